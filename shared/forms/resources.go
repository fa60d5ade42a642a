package forms

import (
	"github.com/google/uuid"
)

type CountryForm struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (f *CountryForm) Ok() (map[string]string, bool) {
	trim(&f.Name)
	return check(f)
}

type StateForm struct {
	CountryID *uint  `json:"country_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=255"`
}

func (f *StateForm) Ok() (map[string]string, bool) {
	trim(&f.Name)
	return check(f)
}

type CityForm struct {
	StateID *uint  `json:"state_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=255"`
}

func (f *CityForm) Ok() (map[string]string, bool) {
	trim(&f.Name)
	return check(f)
}

// DepartmentForm carries a tenant only for admins; everyone else creates in their own tenant
type DepartmentForm struct {
	TenantID *uuid.UUID `json:"tenant_id"`
	Name     string     `json:"name" validate:"required,max=255"`
}

func (f *DepartmentForm) Ok() (map[string]string, bool) {
	trim(&f.Name)
	return check(f)
}

type TenantForm struct {
	Name     string `json:"name" validate:"required,max=255"`
	Slug     string `json:"slug" validate:"required,max=255,slug"`
	IsActive *bool  `json:"is_active"`
}

func (f *TenantForm) Ok() (map[string]string, bool) {
	trim(&f.Name, &f.Slug)
	return check(f)
}

// UserForm is shared by create and edit; an empty password on edit keeps the current one
type UserForm struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"omitempty,min=8,max=255"`
	IsAdmin  bool       `json:"is_admin"`
	TenantID *uuid.UUID `json:"tenant_id"`
}

func (f *UserForm) Ok(creating bool) (map[string]string, bool) {
	trim(&f.Name, &f.Email)
	errs, ok := check(f)
	if creating && f.Password == "" {
		errs["password"] = "The password field is required."
		ok = false
	}
	return errs, ok
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginForm) Ok() (map[string]string, bool) {
	trim(&f.Email)
	return check(f)
}
