package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

// relation is the parent side of an employee relation manager
type relation int

const (
	relationCity relation = iota
	relationDepartment
)

func (r relation) String() string {
	if r == relationCity {
		return "city"
	}
	return "department"
}

// scope narrows the caller's scope to the parent's employees
func (r relation) scope(base listing.Scope, parentID uint) listing.Scope {
	id := parentID
	if r == relationCity {
		base.CityID = &id
	} else {
		base.DepartmentID = &id
	}
	return base
}

// force pins the form to the parent regardless of what was posted
func (r relation) force(form *forms.EmployeeForm, parentID uint) {
	id := parentID
	if r == relationCity {
		form.CityID = &id
	} else {
		form.DepartmentID = &id
	}
}

// ensureParent answers not found when the parent does not exist or is outside the caller's tenant
func (r relation) ensureParent(ctx context.Context, app *App, info *models.UserInfo, parentID uint) error {
	var count int64
	var err error
	if r == relationCity {
		err = app.db.WithContext(ctx).Model(&models.City{}).Where("id = ?", parentID).Count(&count).Error
	} else {
		err = departmentsVisibleTo(app.db.WithContext(ctx).Model(&models.Department{}), info).
			Where("departments.id = ?", parentID).Count(&count).Error
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.NotFound(r.String() + " not found")
	}
	return nil
}

// handleRelationEmployees lists the employees of a city or department
func handleRelationEmployees(app *App, r relation) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		parentID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := r.ensureParent(c.Request.Context(), app, info, parentID); err != nil {
			respondError(c, err, "Failed to load "+r.String())
			return
		}
		listEmployees(c, app, r.scope(tenantScope(info), parentID))
	}
}

// handleRelationCreateEmployee creates an employee attached to the parent
func handleRelationCreateEmployee(app *App, r relation) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		parentID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		ctx := c.Request.Context()
		if err := r.ensureParent(ctx, app, info, parentID); err != nil {
			respondError(c, err, "Failed to load "+r.String())
			return
		}

		var form forms.EmployeeForm
		if !bindJSON(c, &form) {
			return
		}
		r.force(&form, parentID)

		employee, err := createEmployee(ctx, app, info, &form)
		if err != nil {
			respondError(c, err, "Failed to create employee")
			return
		}
		utils.NotifyResponse(c, http.StatusCreated, employeeCreated, employee)
	}
}

// handleRelationReadOnly rejects edits and deletes made through a relation manager
func handleRelationReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ForbiddenResponse(c, "This relation is read-only")
	}
}
