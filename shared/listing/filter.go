// Package listing builds the filtered, sorted and paginated employee queries
// shared by the list page, relation managers, tabs, badges and exports.
package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
)

const DefaultPerPage = 10

// PerPageOptions are the page sizes the list accepts
var PerPageOptions = []int{5, 10, 25, 50}

// sortColumns maps the public sort keys onto qualified columns
var sortColumns = map[string]string{
	"country.name":    "countries.name",
	"state.name":      "states.name",
	"city.name":       "cities.name",
	"department.name": "departments.name",
	"first_name":      "employees.first_name",
	"last_name":       "employees.last_name",
	"middle_name":     "employees.middle_name",
	"zip_code":        "employees.zip_code",
	"date_of_birth":   "employees.date_of_birth",
	"date_hired":      "employees.date_hired",
	"created_at":      "employees.created_at",
	"updated_at":      "employees.updated_at",
}

// Query is the raw list query string
type Query struct {
	Search       string `form:"search"`
	Sort         string `form:"sort"`
	Direction    string `form:"direction"`
	DepartmentID *uint  `form:"department_id"`
	CreatedFrom  string `form:"created_from"`
	CreatedUntil string `form:"created_until"`
	Tab          string `form:"tab"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

// Filter is a validated Query
type Filter struct {
	Search       string
	Sort         string
	Desc         bool
	DepartmentID *uint
	CreatedFrom  *time.Time
	CreatedUntil *time.Time
	Tab          Tab
	Page         int
	PerPage      int
}

// Scope holds constraints the caller cannot lift: tenant visibility and relation manager parents
type Scope struct {
	TenantID     *uuid.UUID
	CityID       *uint
	DepartmentID *uint
}

// Filter validates q. Dates are calendar days in loc.
func (q Query) Filter(loc *time.Location) (Filter, map[string]string) {
	errs := make(map[string]string)
	f := Filter{
		Search:       strings.TrimSpace(q.Search),
		DepartmentID: q.DepartmentID,
		Tab:          TabAll,
		Page:         q.Page,
		PerPage:      q.PerPage,
	}

	if q.Sort != "" {
		if _, ok := sortColumns[q.Sort]; !ok {
			errs["sort"] = fmt.Sprintf("The sort column %q is not sortable.", q.Sort)
		}
		f.Sort = q.Sort
	}

	switch strings.ToLower(q.Direction) {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		errs["direction"] = "The direction must be asc or desc."
	}

	if q.CreatedFrom != "" {
		day, err := time.ParseInLocation(models.DateLayout, q.CreatedFrom, loc)
		if err != nil {
			errs["created_from"] = "The created from field must be a date in YYYY-MM-DD format."
		} else {
			f.CreatedFrom = &day
		}
	}
	if q.CreatedUntil != "" {
		day, err := time.ParseInLocation(models.DateLayout, q.CreatedUntil, loc)
		if err != nil {
			errs["created_until"] = "The created until field must be a date in YYYY-MM-DD format."
		} else {
			f.CreatedUntil = &day
		}
	}

	if q.Tab != "" {
		tab := Tab(q.Tab)
		if !tab.Valid() {
			errs["tab"] = fmt.Sprintf("The tab %q does not exist.", q.Tab)
		}
		f.Tab = tab
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if !validPerPage(f.PerPage) {
		f.PerPage = DefaultPerPage
	}

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

func validPerPage(n int) bool {
	for _, option := range PerPageOptions {
		if n == option {
			return true
		}
	}
	return false
}

// Indicators describes the active filters the way the list header shows them
func (f Filter) Indicators(departmentName string) []string {
	indicators := make([]string, 0, 3)
	if f.DepartmentID != nil && departmentName != "" {
		indicators = append(indicators, "Department: "+departmentName)
	}
	if f.CreatedFrom != nil {
		indicators = append(indicators, "Created from "+f.CreatedFrom.Format("Jan 2, 2006"))
	}
	if f.CreatedUntil != nil {
		indicators = append(indicators, "Created until "+f.CreatedUntil.Format("Jan 2, 2006"))
	}
	return indicators
}
