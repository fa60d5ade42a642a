package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

var (
	employeeCreated     = utils.SuccessNotification("Employee Created", "The employee was created successfully!")
	employeeSaved       = utils.SuccessNotification("Saved", "")
	employeeDeleted     = utils.SuccessNotification("Employee Deleted", "The employee was deleted successfully!")
	employeesBulkDelete = utils.SuccessNotification("Deleted", "")
)

// BadgeResponse is the navigation badge of the employee resource
type BadgeResponse struct {
	Count int64  `json:"count"`
	Color string `json:"color"`
}

func badgeColor(count int64) string {
	if count > 5 {
		return "warning"
	}
	return "success"
}

// bindListFilter parses the list query string or answers 422
func bindListFilter(c *gin.Context, app *App) (listing.Filter, bool) {
	var q listing.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return listing.Filter{}, false
	}

	f, errs := q.Filter(app.cfg.Location())
	if errs != nil {
		utils.ValidationErrorResponse(c, errs)
		return listing.Filter{}, false
	}
	return f, true
}

// listEmployees answers one page of employees for scope
func listEmployees(c *gin.Context, app *App, scope listing.Scope) {
	f, ok := bindListFilter(c, app)
	if !ok {
		return
	}

	page, err := app.lister.List(c.Request.Context(), scope, f)
	if err != nil {
		respondError(c, err, "Failed to fetch employees")
		return
	}

	utils.PaginatedResponse(c, "Employees retrieved successfully", page.Employees, page.Meta)
}

func handleListEmployees(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		listEmployees(c, app, tenantScope(info))
	}
}

func handleEmployeeTabs(lister *listing.Lister) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		tabs, err := lister.CountTabs(c.Request.Context(), tenantScope(info))
		if err != nil {
			respondError(c, err, "Failed to count employees")
			return
		}
		utils.OKResponse(c, "Tabs retrieved successfully", tabs)
	}
}

func handleEmployeeBadge(lister *listing.Lister) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		count, err := lister.Count(c.Request.Context(), tenantScope(info))
		if err != nil {
			respondError(c, err, "Failed to count employees")
			return
		}
		utils.OKResponse(c, "Badge retrieved successfully", BadgeResponse{Count: count, Color: badgeColor(count)})
	}
}

func handleGetEmployee(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		employee, err := app.lister.Find(c.Request.Context(), tenantScope(info), id)
		if err != nil {
			respondError(c, err, "Employee not found")
			return
		}
		utils.OKResponse(c, "Employee retrieved successfully", employee)
	}
}

func handleCreateEmployee(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		var form forms.EmployeeForm
		if !bindJSON(c, &form) {
			return
		}

		employee, err := createEmployee(c.Request.Context(), app, info, &form)
		if err != nil {
			respondError(c, err, "Failed to create employee")
			return
		}
		utils.NotifyResponse(c, http.StatusCreated, employeeCreated, employee)
	}
}

func handleUpdateEmployee(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var form forms.EmployeeForm
		if !bindJSON(c, &form) {
			return
		}

		employee, err := updateEmployee(c.Request.Context(), app, info, id, &form)
		if err != nil {
			respondError(c, err, "Failed to update employee")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, employeeSaved, employee)
	}
}

func handleDeleteEmployee(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		ctx := c.Request.Context()
		employee, err := app.lister.Find(ctx, tenantScope(info), id)
		if err != nil {
			respondError(c, err, "Employee not found")
			return
		}

		if err := deleteEmployees(ctx, app, info, []models.Employee{*employee}); err != nil {
			respondError(c, err, "Failed to delete employee")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, employeeDeleted, nil)
	}
}

// BulkDeleteResponse reports how many of the selected employees were deleted
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

func handleBulkDeleteEmployees(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		var form forms.BulkDeleteForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		employees, err := app.lister.FindMany(ctx, tenantScope(info), form.IDs)
		if err != nil {
			respondError(c, err, "Failed to load employees")
			return
		}

		if err := deleteEmployees(ctx, app, info, employees); err != nil {
			respondError(c, err, "Failed to delete employees")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, employeesBulkDelete, BulkDeleteResponse{Deleted: len(employees)})
	}
}
