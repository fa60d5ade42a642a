package forms

import (
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
)

// EmployeeForm is the create and edit payload of an employee
type EmployeeForm struct {
	CountryID    *uint  `json:"country_id" validate:"required"`
	StateID      *uint  `json:"state_id" validate:"required"`
	CityID       *uint  `json:"city_id" validate:"required"`
	DepartmentID *uint  `json:"department_id" validate:"required"`
	FirstName    string `json:"first_name" validate:"required,max=255"`
	LastName     string `json:"last_name" validate:"required,max=255"`
	MiddleName   string `json:"middle_name" validate:"required,max=255"`
	Address      string `json:"address" validate:"required,max=255"`
	ZipCode      string `json:"zip_code" validate:"required,max=255"`
	DateOfBirth  string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	DateHired    string `json:"date_hired" validate:"required,datetime=2006-01-02"`
}

func (f *EmployeeForm) Normalize() {
	trim(&f.FirstName, &f.LastName, &f.MiddleName, &f.Address, &f.ZipCode, &f.DateOfBirth, &f.DateHired)
}

// Ok validates the form. It does not check that referenced rows exist.
func (f *EmployeeForm) Ok() (map[string]string, bool) {
	f.Normalize()
	return check(f)
}

// Fill copies a validated form onto e
func (f *EmployeeForm) Fill(e *models.Employee) {
	e.CountryID = *f.CountryID
	e.StateID = *f.StateID
	e.CityID = *f.CityID
	e.DepartmentID = *f.DepartmentID
	e.FirstName = f.FirstName
	e.LastName = f.LastName
	e.MiddleName = f.MiddleName
	e.Address = f.Address
	e.ZipCode = f.ZipCode
	e.DateOfBirth = parseDate(f.DateOfBirth)
	e.DateHired = parseDate(f.DateHired)
}

// FromEmployee is the edit form pre-filled with e
func FromEmployee(e *models.Employee) EmployeeForm {
	return EmployeeForm{
		CountryID:    &e.CountryID,
		StateID:      &e.StateID,
		CityID:       &e.CityID,
		DepartmentID: &e.DepartmentID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		MiddleName:   e.MiddleName,
		Address:      e.Address,
		ZipCode:      e.ZipCode,
		DateOfBirth:  e.DateOfBirth.Format(models.DateLayout),
		DateHired:    e.DateHired.Format(models.DateLayout),
	}
}

// parseDate is only called on values that passed the datetime rule
func parseDate(value string) time.Time {
	t, _ := time.ParseInLocation(models.DateLayout, value, time.UTC)
	return t
}

// BulkDeleteForm selects the employees removed by a bulk action
type BulkDeleteForm struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,required"`
}

func (f *BulkDeleteForm) Ok() (map[string]string, bool) {
	return check(f)
}
