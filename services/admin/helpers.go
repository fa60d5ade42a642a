package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"gorm.io/gorm"
)

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body or answers 400
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return false
	}
	return true
}

// caller returns the authenticated user or answers 401
func caller(c *gin.Context) (*models.UserInfo, bool) {
	info, err := middleware.GetUserInfoFromContext(c)
	if err != nil {
		utils.UnauthorizedResponse(c, "User not found in context")
		return nil, false
	}
	return info, true
}

// tenantScope limits non-admins to their tenant. A non-admin without a tenant sees nothing.
func tenantScope(info *models.UserInfo) listing.Scope {
	if info.IsAdminUser() {
		return listing.Scope{}
	}
	if info.TenantID == nil {
		nobody := uuid.Nil
		return listing.Scope{TenantID: &nobody}
	}
	return listing.Scope{TenantID: info.TenantID}
}

// departmentsVisibleTo restricts a department query to the caller's tenant
func departmentsVisibleTo(tx *gorm.DB, info *models.UserInfo) *gorm.DB {
	scope := tenantScope(info)
	if scope.TenantID != nil {
		return tx.Where("departments.tenant_id = ?", *scope.TenantID)
	}
	return tx
}

// respondError maps classified errors onto the response envelope
func respondError(c *gin.Context, err error, fallback string) {
	err = apperror.MapDatabaseError(err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFoundResponse(c, "Record not found")
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		middleware.LoggerFromContext(c).WithError(err).Error(fallback)
		utils.FailureResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Code {
	case apperror.CodeValidation:
		utils.ValidationErrorResponse(c, appErr.Fields)
	case apperror.CodeNotFound:
		utils.NotFoundResponse(c, appErr.Message)
	case apperror.CodeForbidden:
		utils.ForbiddenResponse(c, appErr.Message)
	case apperror.CodeConflict:
		utils.FailureResponse(c, http.StatusConflict, appErr.Message)
	default:
		middleware.LoggerFromContext(c).WithError(err).Error(fallback)
		utils.FailureResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
