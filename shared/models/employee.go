package models

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire format of every date-only field
const DateLayout = "2006-01-02"

// Employee is the main record managed by the panel. Deletion is soft.
type Employee struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CountryID    uint           `json:"country_id" gorm:"not null;index"`
	StateID      uint           `json:"state_id" gorm:"not null;index"`
	CityID       uint           `json:"city_id" gorm:"not null;index"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	FirstName    string         `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName     string         `json:"last_name" gorm:"type:varchar(255);not null"`
	MiddleName   string         `json:"middle_name" gorm:"type:varchar(255);not null"`
	Address      string         `json:"address" gorm:"type:varchar(255);not null"`
	ZipCode      string         `json:"zip_code" gorm:"type:varchar(255);not null"`
	DateOfBirth  time.Time      `json:"date_of_birth" gorm:"type:date;not null"`
	DateHired    time.Time      `json:"date_hired" gorm:"type:date;not null;index"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Country    *Country    `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	State      *State      `json:"state,omitempty" gorm:"foreignKey:StateID"`
	City       *City       `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// FullName is the record title used by search results
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
