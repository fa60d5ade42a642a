package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	am := NewAuthMiddleware(issuer)

	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	router.Use(RequestLogger(logger))
	api := router.Group("/api", am.RequireAuth())
	api.GET("/me", func(c *gin.Context) {
		info, err := GetUserInfoFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, info)
	})
	api.GET("/admin", am.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, issuer
}

func TestRequireAuth(t *testing.T) {
	router, issuer := newTestRouter(t)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := issuer.Issue(&models.User{ID: 7, Email: "hr@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"user_id":7`)
	})
}

func TestRequireAdmin(t *testing.T) {
	router, issuer := newTestRouter(t)

	userToken, _, err := issuer.Issue(&models.User{ID: 2, Email: "user@example.com"})
	require.NoError(t, err)
	adminToken, _, err := issuer.Issue(&models.User{ID: 1, Email: "admin@admin.com", IsAdmin: true})
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		token string
		code  int
	}{
		"user":  {userToken, http.StatusForbidden},
		"admin": {adminToken, http.StatusNoContent},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limit, err := RateLimit("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.POST("/login", limit, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = RateLimit("lots")
	require.Error(t, err)
}
