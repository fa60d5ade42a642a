package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/dbtest"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []EmployeeEvent
}

func (p *recordingPublisher) Publish(event EmployeeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type envelope struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Data         json.RawMessage     `json:"data"`
	Meta         json.RawMessage     `json:"meta"`
	Error        string              `json:"error"`
	Errors       map[string]string   `json:"errors"`
	Notification *utils.Notification `json:"notification"`
}

type testServer struct {
	*dbtest.Fixture
	t          *testing.T
	db         *gorm.DB
	app        *App
	router     *gin.Engine
	events     *recordingPublisher
	adminToken string
	userToken  string
	admin      models.User
	user       models.User
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		TimeZone:       "UTC",
		AllowedOrigins: []string{"*"},
		Redis:          config.RedisConfig{OptionTTL: time.Minute},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			TokenTTL:       time.Hour,
			LoginRateLimit: "1000-M",
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	fixture := dbtest.Seed(t, db)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	events := &recordingPublisher{}
	app := NewApp(testConfig(), db, logger, events, &Exporter{})
	router, err := setupRouter(app)
	require.NoError(t, err)

	ts := &testServer{Fixture: fixture, t: t, db: db, app: app, router: router, events: events}

	hash, err := HashPassword("password")
	require.NoError(t, err)
	ts.admin = models.User{Name: "Admin", Email: "admin@admin.com", PasswordHash: hash, IsAdmin: true}
	ts.user = models.User{Name: "HR", Email: "hr@acme.test", PasswordHash: hash, TenantID: &fixture.Tenant.ID}
	require.NoError(t, db.Create(&ts.admin).Error)
	require.NoError(t, db.Create(&ts.user).Error)

	ts.adminToken, _, err = app.issuer.Issue(&ts.admin)
	require.NoError(t, err)
	ts.userToken, _, err = app.issuer.Issue(&ts.user)
	require.NoError(t, err)
	return ts
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest), string(env.Data))
}

func (ts *testServer) employeePayload() map[string]interface{} {
	return map[string]interface{}{
		"country_id":    ts.Country.ID,
		"state_id":      ts.State.ID,
		"city_id":       ts.City.ID,
		"department_id": ts.Sales.ID,
		"first_name":    "Juan",
		"last_name":     "Dela Cruz",
		"middle_name":   "Santos",
		"address":       "1 Ayala Ave",
		"zip_code":      "1226",
		"date_of_birth": "1990-05-17",
		"date_hired":    "2024-06-10",
	}
}

func (ts *testServer) insertEmployee(first string, dept models.Department, hired, created time.Time) models.Employee {
	ts.t.Helper()
	e := ts.Employee(first, "Tester", dept, hired)
	e.CreatedAt = created
	require.NoError(ts.t, ts.db.Create(&e).Error)
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func jsonUnmarshal(data []byte, dest interface{}) error {
	return json.Unmarshal(data, dest)
}
