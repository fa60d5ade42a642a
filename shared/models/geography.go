package models

import "time"

// Country is the root of the location hierarchy
type Country struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	States []State `json:"states,omitempty" gorm:"foreignKey:CountryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// State belongs to a Country and groups Cities
type State struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CountryID uint      `json:"country_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Country *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Cities  []City   `json:"cities,omitempty" gorm:"foreignKey:StateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// City belongs to a State and is where employees live
type City struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StateID   uint      `json:"state_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	State     *State     `json:"state,omitempty" gorm:"foreignKey:StateID"`
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// TableName returns the table name for the Country model
func (Country) TableName() string {
	return "countries"
}

// TableName returns the table name for the State model
func (State) TableName() string {
	return "states"
}

// TableName returns the table name for the City model
func (City) TableName() string {
	return "cities"
}
