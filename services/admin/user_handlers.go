package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword hashes a panel password with the default bcrypt cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkUserForm validates the form plus the unique email and tenant reference
func checkUserForm(ctx context.Context, db *gorm.DB, form *forms.UserForm, creating bool, exceptID uint) error {
	errs, ok := form.Ok(creating)
	if !ok {
		return apperror.Validation(errs)
	}

	var taken int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", form.Email, exceptID).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return apperror.Field("email", "The email has already been taken.")
	}

	if form.TenantID != nil {
		var tenants int64
		if err := db.WithContext(ctx).Model(&models.Tenant{}).Where("id = ?", *form.TenantID).Count(&tenants).Error; err != nil {
			return err
		}
		if tenants == 0 {
			return apperror.Field("tenant_id", "The selected tenant is invalid.")
		}
	}
	return nil
}

func handleListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.WithContext(c.Request.Context()).Preload("Tenant")
		if term := strings.TrimSpace(c.Query("search")); term != "" {
			pattern := listing.Contains(term)
			tx = tx.Where(listing.Like("name")+" OR "+listing.Like("email"), pattern, pattern)
		}

		var users []models.User
		if err := tx.Order("name ASC").Find(&users).Error; err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		utils.OKResponse(c, "Users retrieved successfully", users)
	}
}

func handleGetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).Preload("Tenant").First(&user, id).Error; err != nil {
			respondError(c, err, "User not found")
			return
		}
		utils.OKResponse(c, "User retrieved successfully", user)
	}
}

func handleCreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.UserForm
		if !bindJSON(c, &form) {
			return
		}

		ctx := c.Request.Context()
		if err := checkUserForm(ctx, db, &form, true, 0); err != nil {
			respondError(c, err, "Failed to create user")
			return
		}

		hash, err := HashPassword(form.Password)
		if err != nil {
			respondError(c, err, "Failed to hash password")
			return
		}

		user := models.User{
			Name:         form.Name,
			Email:        form.Email,
			PasswordHash: hash,
			IsAdmin:      form.IsAdmin,
			TenantID:     form.TenantID,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			respondError(c, err, "Failed to create user")
			return
		}
		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), user)
	}
}

func handleUpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var user models.User
		if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
			respondError(c, err, "User not found")
			return
		}

		var form forms.UserForm
		if !bindJSON(c, &form) {
			return
		}
		if err := checkUserForm(ctx, db, &form, false, user.ID); err != nil {
			respondError(c, err, "Failed to update user")
			return
		}

		user.Name = form.Name
		user.Email = form.Email
		user.IsAdmin = form.IsAdmin
		user.TenantID = form.TenantID
		if form.Password != "" {
			hash, err := HashPassword(form.Password)
			if err != nil {
				respondError(c, err, "Failed to hash password")
				return
			}
			user.PasswordHash = hash
		}

		if err := db.WithContext(ctx).Omit("Tenant").Save(&user).Error; err != nil {
			respondError(c, err, "Failed to update user")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), user)
	}
}

func handleDeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if id == info.UserID {
			utils.ForbiddenResponse(c, "You cannot delete your own account")
			return
		}

		result := db.WithContext(c.Request.Context()).Delete(&models.User{}, id)
		if result.Error != nil {
			respondError(c, result.Error, "Failed to delete user")
			return
		}
		if result.RowsAffected == 0 {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Deleted", ""), nil)
	}
}
