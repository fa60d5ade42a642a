package models

import (
	"time"

	"github.com/google/uuid"
)

// Department is owned by exactly one tenant
type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant    *Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (Department) TableName() string {
	return "departments"
}
