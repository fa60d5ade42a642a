package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func validEmployeeForm() EmployeeForm {
	return EmployeeForm{
		CountryID:    uintPtr(1),
		StateID:      uintPtr(2),
		CityID:       uintPtr(3),
		DepartmentID: uintPtr(4),
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		MiddleName:   "Santos",
		Address:      "1 Ayala Ave",
		ZipCode:      "1226",
		DateOfBirth:  "1990-05-17",
		DateHired:    "2024-06-10",
	}
}

func TestEmployeeFormOk(t *testing.T) {
	f := validEmployeeForm()
	f.FirstName = "  Juan  "

	errs, ok := f.Ok()
	require.True(t, ok)
	require.Empty(t, errs)
	require.Equal(t, "Juan", f.FirstName)

	var e models.Employee
	f.Fill(&e)
	require.Equal(t, uint(4), e.DepartmentID)
	require.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), e.DateHired)
	require.Equal(t, f, FromEmployee(&e))
}

func TestEmployeeFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *EmployeeForm)
		field  string
		msg    string
	}{
		{"missing first name", func(f *EmployeeForm) { f.FirstName = "" }, "first_name", "The first name field is required."},
		{"blank last name", func(f *EmployeeForm) { f.LastName = "   " }, "last_name", "The last name field is required."},
		{"long address", func(f *EmployeeForm) { f.Address = strings.Repeat("a", 256) }, "address", "The address field must not be greater than 255 characters."},
		{"missing department", func(f *EmployeeForm) { f.DepartmentID = nil }, "department_id", "The department id field is required."},
		{"bad date", func(f *EmployeeForm) { f.DateHired = "10/06/2024" }, "date_hired", "The date hired field must match the format YYYY-MM-DD."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validEmployeeForm()
			tt.mutate(&f)

			errs, ok := f.Ok()
			require.False(t, ok)
			require.Len(t, errs, 1)
			require.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestEmployeeFormMaxCountsRunes(t *testing.T) {
	f := validEmployeeForm()
	f.MiddleName = strings.Repeat("ñ", 255)

	_, ok := f.Ok()
	require.True(t, ok)
}

func TestBulkDeleteForm(t *testing.T) {
	_, ok := (&BulkDeleteForm{IDs: []uint{1, 2}}).Ok()
	require.True(t, ok)

	errs, ok := (&BulkDeleteForm{IDs: []uint{}}).Ok()
	require.False(t, ok)
	require.Equal(t, "The ids field must have at least 1 items.", errs["ids"])

	errs, ok = (&BulkDeleteForm{}).Ok()
	require.False(t, ok)
	require.Contains(t, errs, "ids")
}
