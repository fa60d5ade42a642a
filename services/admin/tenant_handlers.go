package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"gorm.io/gorm"
)

func parseTenantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tenant ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleListTenants handles getting all tenants (admin only)
func handleListTenants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tenants []models.Tenant
		if err := db.WithContext(c.Request.Context()).Order("name ASC").Find(&tenants).Error; err != nil {
			respondError(c, err, "Failed to fetch tenants")
			return
		}

		utils.OKResponse(c, "Tenants retrieved successfully", tenants)
	}
}

// handleGetTenant handles getting a specific tenant
func handleGetTenant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := parseTenantID(c)
		if !ok {
			return
		}

		var tenant models.Tenant
		if err := db.WithContext(c.Request.Context()).Preload("Departments").Preload("Users").First(&tenant, "id = ?", tenantID).Error; err != nil {
			respondError(c, err, "Tenant not found")
			return
		}

		utils.OKResponse(c, "Tenant retrieved successfully", tenant)
	}
}

// handleCreateTenant handles tenant creation (admin only)
func handleCreateTenant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.TenantForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		var existing int64
		if err := db.WithContext(ctx).Model(&models.Tenant{}).Where("slug = ?", form.Slug).Count(&existing).Error; err != nil {
			respondError(c, err, "Failed to create tenant")
			return
		}
		if existing > 0 {
			utils.ValidationErrorResponse(c, map[string]string{"slug": "The slug has already been taken."})
			return
		}

		tenant := models.Tenant{
			Name:     form.Name,
			Slug:     form.Slug,
			IsActive: true,
		}
		if form.IsActive != nil {
			tenant.IsActive = *form.IsActive
		}

		// is_active has a database default, so false must be written explicitly
		if err := db.WithContext(ctx).Select("*").Create(&tenant).Error; err != nil {
			respondError(c, err, "Failed to create tenant")
			return
		}

		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), tenant)
	}
}

// handleUpdateTenant handles updating a tenant
func handleUpdateTenant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := parseTenantID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var tenant models.Tenant
		if err := db.WithContext(ctx).First(&tenant, "id = ?", tenantID).Error; err != nil {
			respondError(c, err, "Tenant not found")
			return
		}

		var form forms.TenantForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		var existing int64
		if err := db.WithContext(ctx).Model(&models.Tenant{}).Where("slug = ? AND id <> ?", form.Slug, tenantID).Count(&existing).Error; err != nil {
			respondError(c, err, "Failed to update tenant")
			return
		}
		if existing > 0 {
			utils.ValidationErrorResponse(c, map[string]string{"slug": "The slug has already been taken."})
			return
		}

		tenant.Name = form.Name
		tenant.Slug = form.Slug
		if form.IsActive != nil {
			tenant.IsActive = *form.IsActive
		}

		if err := db.WithContext(ctx).Omit("Departments", "Users").Save(&tenant).Error; err != nil {
			respondError(c, err, "Failed to update tenant")
			return
		}

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), tenant)
	}
}

// handleDeleteTenant soft-deletes a tenant
func handleDeleteTenant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := parseTenantID(c)
		if !ok {
			return
		}

		result := db.WithContext(c.Request.Context()).Delete(&models.Tenant{}, "id = ?", tenantID)
		if result.Error != nil {
			respondError(c, result.Error, "Failed to delete tenant")
			return
		}
		if result.RowsAffected == 0 {
			utils.NotFoundResponse(c, "Tenant not found")
			return
		}

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Deleted", ""), nil)
	}
}
