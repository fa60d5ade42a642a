package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployee(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/employees", ts.userToken, ts.employeePayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode(t, w)
	require.True(t, env.Success)
	require.Equal(t, &utils.Notification{
		Title:  "Employee Created",
		Body:   "The employee was created successfully!",
		Status: utils.NotificationSuccess,
	}, env.Notification)

	var employee models.Employee
	decodeData(t, env, &employee)
	require.NotZero(t, employee.ID)
	require.Equal(t, "Juan", employee.FirstName)
	require.NotNil(t, employee.Country)
	require.Equal(t, "Philippines", employee.Country.Name)

	require.Equal(t, []string{EventEmployeeCreated}, ts.events.types())
	require.Equal(t, ts.Tenant.ID, *ts.events.events[0].TenantID)
}

func TestCreateEmployeeValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(p map[string]interface{})
		field  string
	}{
		{"missing first name", func(p map[string]interface{}) { delete(p, "first_name") }, "first_name"},
		{"too long zip code", func(p map[string]interface{}) { p["zip_code"] = strings.Repeat("9", 256) }, "zip_code"},
		{"state of another country", func(p map[string]interface{}) { p["state_id"] = 999 }, "state_id"},
		{"city of another state", func(p map[string]interface{}) { p["city_id"] = ts.OtherCity.ID }, "city_id"},
		{"department of another tenant", func(p map[string]interface{}) { p["department_id"] = ts.Foreign.ID }, "department_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := ts.employeePayload()
			tt.mutate(payload)

			w := ts.do(http.MethodPost, "/api/employees", ts.userToken, payload)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			env := decode(t, w)
			require.False(t, env.Success)
			require.Contains(t, env.Errors, tt.field)
		})
	}

	var count int64
	require.NoError(t, ts.db.Unscoped().Model(&models.Employee{}).Count(&count).Error)
	require.Zero(t, count)
	require.Empty(t, ts.events.types())
}

func TestAdminMayUseAnyDepartment(t *testing.T) {
	ts := newTestServer(t)
	payload := ts.employeePayload()
	payload["department_id"] = ts.Foreign.ID

	w := ts.do(http.MethodPost, "/api/employees", ts.adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateEmployee(t *testing.T) {
	ts := newTestServer(t)
	e := ts.insertEmployee("Ana", ts.Sales, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())

	payload := ts.employeePayload()
	payload["first_name"] = "Anna"
	payload["department_id"] = ts.Engineering.ID

	w := ts.do(http.MethodPut, fmt.Sprintf("/api/employees/%d", e.ID), ts.userToken, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.Equal(t, "Saved", env.Notification.Title)

	var stored models.Employee
	require.NoError(t, ts.db.First(&stored, e.ID).Error)
	require.Equal(t, "Anna", stored.FirstName)
	require.Equal(t, ts.Engineering.ID, stored.DepartmentID)
	require.Equal(t, []string{EventEmployeeUpdated}, ts.events.types())

	w = ts.do(http.MethodPut, "/api/employees/9999", ts.userToken, payload)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEmployeeIsSoft(t *testing.T) {
	ts := newTestServer(t)
	e := ts.insertEmployee("Ana", ts.Sales, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())

	w := ts.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", e.ID), ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.Equal(t, "Employee Deleted", env.Notification.Title)
	require.Equal(t, "The employee was deleted successfully!", env.Notification.Body)

	w = ts.do(http.MethodGet, "/api/employees", ts.userToken, nil)
	var employees []models.Employee
	decodeData(t, decode(t, w), &employees)
	require.Empty(t, employees)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/employees/%d", e.ID), ts.userToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Employee
	require.NoError(t, ts.db.Unscoped().First(&stored, e.ID).Error)
	require.True(t, stored.DeletedAt.Valid)
	require.Equal(t, []string{EventEmployeeDeleted}, ts.events.types())
}

func TestBulkDeleteEmployees(t *testing.T) {
	ts := newTestServer(t)
	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := ts.insertEmployee("A", ts.Sales, hired, time.Now().UTC())
	b := ts.insertEmployee("B", ts.Sales, hired, time.Now().UTC())
	c := ts.insertEmployee("C", ts.Sales, hired, time.Now().UTC())
	foreign := ts.insertEmployee("F", ts.Foreign, hired, time.Now().UTC())

	w := ts.do(http.MethodPost, "/api/employees/bulk-delete", ts.userToken, map[string]interface{}{
		"ids": []uint{a.ID, b.ID, foreign.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.Equal(t, "Deleted", env.Notification.Title)
	var result BulkDeleteResponse
	decodeData(t, env, &result)
	require.Equal(t, 2, result.Deleted)

	var remaining []models.Employee
	require.NoError(t, ts.db.Order("id").Find(&remaining).Error)
	require.Equal(t, []uint{c.ID, foreign.ID}, []uint{remaining[0].ID, remaining[1].ID})

	w = ts.do(http.MethodPost, "/api/employees/bulk-delete", ts.userToken, map[string]interface{}{"ids": []uint{}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListEmployees(t *testing.T) {
	ts := newTestServer(t)
	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.insertEmployee("Early", ts.Sales, hired, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	ts.insertEmployee("Late", ts.Engineering, hired, time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC))
	ts.insertEmployee("Hidden", ts.Foreign, hired, time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC))

	w := ts.do(http.MethodGet, "/api/employees?created_from=2024-03-05&sort=first_name", ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	var employees []models.Employee
	decodeData(t, env, &employees)
	require.Len(t, employees, 1)
	require.Equal(t, "Late", employees[0].FirstName)

	var meta listing.Meta
	require.NoError(t, jsonUnmarshal(env.Meta, &meta))
	require.Equal(t, []string{"Created from Mar 5, 2024"}, meta.Indicators)
	require.Equal(t, 10, meta.PerPage)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/employees?department_id=%d", ts.Sales.ID), ts.userToken, nil)
	decodeData(t, decode(t, w), &employees)
	require.Len(t, employees, 1)
	require.Equal(t, "Early", employees[0].FirstName)

	w = ts.do(http.MethodGet, "/api/employees?created_until=March", ts.userToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, decode(t, w).Errors, "created_until")

	w = ts.do(http.MethodGet, "/api/employees", ts.adminToken, nil)
	decodeData(t, decode(t, w), &employees)
	require.Len(t, employees, 3)
}

func TestEmployeeTabsAndBadge(t *testing.T) {
	ts := newTestServer(t)
	now := time.Now().In(ts.app.cfg.Location())
	week, _ := listing.TabRange(listing.TabThisWeek, now, ts.app.cfg.Location())

	ts.insertEmployee("ThisWeek", ts.Sales, week.Start, now)
	ts.insertEmployee("LastWeek", ts.Sales, week.Start.AddDate(0, 0, -1), now)
	ts.insertEmployee("LastYear", ts.Sales, week.Start.AddDate(-1, 0, -7), now)

	w := ts.do(http.MethodGet, "/api/employees/tabs", ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tabs []listing.TabCount
	decodeData(t, decode(t, w), &tabs)
	require.Len(t, tabs, 4)
	require.Equal(t, listing.TabAll, tabs[0].Key)
	require.Equal(t, int64(3), tabs[0].Count)
	require.Equal(t, "This Week", tabs[1].Label)
	require.Equal(t, int64(1), tabs[1].Count)

	w = ts.do(http.MethodGet, "/api/employees/badge", ts.userToken, nil)
	var badge BadgeResponse
	decodeData(t, decode(t, w), &badge)
	require.Equal(t, BadgeResponse{Count: 3, Color: "success"}, badge)

	for i := 0; i < 3; i++ {
		ts.insertEmployee(fmt.Sprintf("Extra%d", i), ts.Sales, week.Start, now)
	}
	w = ts.do(http.MethodGet, "/api/employees/badge", ts.userToken, nil)
	decodeData(t, decode(t, w), &badge)
	require.Equal(t, BadgeResponse{Count: 6, Color: "warning"}, badge)
}

func TestEmployeeTenantIsolation(t *testing.T) {
	ts := newTestServer(t)
	foreign := ts.insertEmployee("F", ts.Foreign, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())

	w := ts.do(http.MethodGet, fmt.Sprintf("/api/employees/%d", foreign.ID), ts.userToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", foreign.ID), ts.userToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/employees/%d", foreign.ID), ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/employees?department_id=%d", ts.Foreign.ID), ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	var employees []models.Employee
	decodeData(t, env, &employees)
	require.Empty(t, employees)

	var meta listing.Meta
	require.NoError(t, jsonUnmarshal(env.Meta, &meta))
	require.Empty(t, meta.Indicators)
	require.NotContains(t, w.Body.String(), ts.Foreign.Name)
}

func TestEmployeeSearchTreatsWildcardsLiterally(t *testing.T) {
	ts := newTestServer(t)
	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.insertEmployee("Ana", ts.Sales, hired, time.Now().UTC())
	ts.insertEmployee("100%", ts.Sales, hired, time.Now().UTC())

	w := ts.do(http.MethodGet, "/api/employees?search=%25", ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var employees []models.Employee
	decodeData(t, decode(t, w), &employees)
	require.Len(t, employees, 1)
	require.Equal(t, "100%", employees[0].FirstName)

	w = ts.do(http.MethodGet, "/api/employees?search=_", ts.userToken, nil)
	decodeData(t, decode(t, w), &employees)
	require.Empty(t, employees)
}

func TestEmployeesRequireAuth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/employees", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
