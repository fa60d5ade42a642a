package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a panel account. Admins see every tenant; everybody else is pinned to TenantID.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	IsAdmin      bool       `json:"is_admin" gorm:"default:false"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty" gorm:"type:uuid;index"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

func (User) TableName() string {
	return "users"
}

// UserInfo represents the caller as decoded from the access token
type UserInfo struct {
	UserID   uint       `json:"user_id"`
	Email    string     `json:"email"`
	IsAdmin  bool       `json:"is_admin"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
}

func (ui *UserInfo) IsAdminUser() bool {
	return ui.IsAdmin
}

// CanAccessTenant reports whether rows owned by tenantID are visible to the caller
func (ui *UserInfo) CanAccessTenant(tenantID uuid.UUID) bool {
	if ui.IsAdminUser() {
		return true
	}
	return ui.TenantID != nil && *ui.TenantID == tenantID
}

// Info returns the token view of the user
func (u *User) Info() UserInfo {
	return UserInfo{
		UserID:   u.ID,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		TenantID: u.TenantID,
	}
}
