package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"gorm.io/gorm"
)

// departmentTenant picks the owning tenant of a department write.
// Admins must name a tenant, everyone else writes into their own.
func departmentTenant(c *gin.Context, db *gorm.DB, info *models.UserInfo, requested *uuid.UUID) (uuid.UUID, error) {
	if !info.IsAdminUser() {
		if info.TenantID == nil {
			return uuid.Nil, apperror.New(apperror.CodeForbidden, "User does not belong to a tenant")
		}
		return *info.TenantID, nil
	}

	if requested == nil {
		return uuid.Nil, apperror.Field("tenant_id", "The tenant id field is required.")
	}
	if err := requireExistsUUID(c, db, *requested); err != nil {
		return uuid.Nil, err
	}
	return *requested, nil
}

func requireExistsUUID(c *gin.Context, db *gorm.DB, tenantID uuid.UUID) error {
	var count int64
	if err := db.WithContext(c.Request.Context()).Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.Field("tenant_id", "The selected tenant is invalid.")
	}
	return nil
}

func findDepartment(c *gin.Context, db *gorm.DB, info *models.UserInfo, id uint) (*models.Department, error) {
	var department models.Department
	err := departmentsVisibleTo(db.WithContext(c.Request.Context()), info).
		Where("departments.id = ?", id).
		First(&department).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func handleListDepartments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		tx := departmentsVisibleTo(db.WithContext(c.Request.Context()), info)
		if term := strings.TrimSpace(c.Query("search")); term != "" {
			tx = tx.Where(listing.Like("departments.name"), listing.Contains(term))
		}

		var departments []models.Department
		if err := tx.Order("departments.name ASC").Find(&departments).Error; err != nil {
			respondError(c, err, "Failed to fetch departments")
			return
		}
		utils.OKResponse(c, "Departments retrieved successfully", departments)
	}
}

func handleGetDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		department, err := findDepartment(c, db, info, id)
		if err != nil {
			respondError(c, err, "Department not found")
			return
		}
		utils.OKResponse(c, "Department retrieved successfully", department)
	}
}

func handleCreateDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		var form forms.DepartmentForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		tenantID, err := departmentTenant(c, db, info, form.TenantID)
		if err != nil {
			respondError(c, err, "Failed to create department")
			return
		}

		department := models.Department{TenantID: tenantID, Name: form.Name}
		if err := db.WithContext(c.Request.Context()).Create(&department).Error; err != nil {
			respondError(c, err, "Failed to create department")
			return
		}
		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), department)
	}
}

func handleUpdateDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		department, err := findDepartment(c, db, info, id)
		if err != nil {
			respondError(c, err, "Department not found")
			return
		}

		var form forms.DepartmentForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		if info.IsAdminUser() && form.TenantID != nil {
			if err := requireExistsUUID(c, db, *form.TenantID); err != nil {
				respondError(c, err, "Failed to update department")
				return
			}
			department.TenantID = *form.TenantID
		}
		department.Name = form.Name

		if err := db.WithContext(c.Request.Context()).Omit("Tenant", "Employees").Save(department).Error; err != nil {
			respondError(c, err, "Failed to update department")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), department)
	}
}

func handleDeleteDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		department, err := findDepartment(c, db, info, id)
		if err != nil {
			respondError(c, err, "Department not found")
			return
		}

		if err := db.WithContext(c.Request.Context()).Delete(department).Error; err != nil {
			respondError(c, err, "Failed to delete department")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Deleted", ""), nil)
	}
}
