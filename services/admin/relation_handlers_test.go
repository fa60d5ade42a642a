package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/stretchr/testify/require"
)

func TestCityRelationListsOnlyItsEmployees(t *testing.T) {
	ts := newTestServer(t)
	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.insertEmployee("Makati", ts.Sales, hired, time.Now().UTC())

	elsewhere := ts.Employee("Cebu", "Tester", ts.Sales, hired)
	elsewhere.StateID = ts.OtherState.ID
	elsewhere.CityID = ts.OtherCity.ID
	require.NoError(t, ts.db.Create(&elsewhere).Error)

	w := ts.do(http.MethodGet, fmt.Sprintf("/api/cities/%d/employees", ts.City.ID), ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var employees []models.Employee
	decodeData(t, decode(t, w), &employees)
	require.Len(t, employees, 1)
	require.Equal(t, "Makati", employees[0].FirstName)

	w = ts.do(http.MethodGet, "/api/cities/9999/employees", ts.userToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentRelationCreateForcesParent(t *testing.T) {
	ts := newTestServer(t)

	payload := ts.employeePayload()
	payload["department_id"] = ts.Sales.ID

	w := ts.do(http.MethodPost, fmt.Sprintf("/api/departments/%d/employees", ts.Engineering.ID), ts.userToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode(t, w)
	require.Equal(t, "Employee Created", env.Notification.Title)

	var employee models.Employee
	decodeData(t, env, &employee)
	require.Equal(t, ts.Engineering.ID, employee.DepartmentID)
}

func TestDepartmentRelationHidesForeignDepartment(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, fmt.Sprintf("/api/departments/%d/employees", ts.Foreign.ID), ts.userToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, fmt.Sprintf("/api/departments/%d/employees", ts.Foreign.ID), ts.userToken, ts.employeePayload())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRelationManagersAreReadOnly(t *testing.T) {
	ts := newTestServer(t)
	e := ts.insertEmployee("Ana", ts.Sales, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())

	paths := []string{
		fmt.Sprintf("/api/cities/%d/employees/%d", ts.City.ID, e.ID),
		fmt.Sprintf("/api/departments/%d/employees/%d", ts.Sales.ID, e.ID),
	}
	for _, path := range paths {
		w := ts.do(http.MethodPut, path, ts.userToken, ts.employeePayload())
		require.Equal(t, http.StatusForbidden, w.Code, path)

		w = ts.do(http.MethodDelete, path, ts.userToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)
	}

	var stored models.Employee
	require.NoError(t, ts.db.First(&stored, e.ID).Error)
	require.Equal(t, "Ana", stored.FirstName)
}
