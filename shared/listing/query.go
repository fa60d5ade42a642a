package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"gorm.io/gorm"
)

// Meta is the pagination and filter state returned with a page
type Meta struct {
	CurrentPage int      `json:"current_page"`
	PerPage     int      `json:"per_page"`
	Total       int64    `json:"total"`
	LastPage    int      `json:"last_page"`
	Tab         Tab      `json:"tab"`
	Indicators  []string `json:"indicators"`
}

// Page is one page of employees
type Page struct {
	Employees []models.Employee
	Meta      Meta
}

// TabCount is a tab with its live badge
type TabCount struct {
	Key   Tab    `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Lister runs employee list queries in a fixed time zone
type Lister struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewLister(db *gorm.DB, loc *time.Location) *Lister {
	return &Lister{db: db, loc: loc, now: time.Now}
}

// base selects live employees joined to their relations and restricted to scope
func (l *Lister) base(ctx context.Context, scope Scope) *gorm.DB {
	tx := l.db.WithContext(ctx).Model(&models.Employee{}).
		Joins("LEFT JOIN countries ON countries.id = employees.country_id").
		Joins("LEFT JOIN states ON states.id = employees.state_id").
		Joins("LEFT JOIN cities ON cities.id = employees.city_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")

	if scope.TenantID != nil {
		tx = tx.Where("departments.tenant_id = ?", *scope.TenantID)
	}
	if scope.CityID != nil {
		tx = tx.Where("employees.city_id = ?", *scope.CityID)
	}
	if scope.DepartmentID != nil {
		tx = tx.Where("employees.department_id = ?", *scope.DepartmentID)
	}
	return tx
}

// searchColumns are matched by the list search box
var searchColumns = []string{
	"employees.first_name", "employees.last_name", "employees.middle_name",
	"employees.address", "employees.zip_code",
	"countries.name", "states.name", "cities.name", "departments.name",
}

func (l *Lister) apply(tx *gorm.DB, f Filter) *gorm.DB {
	if f.Search != "" {
		pattern := Contains(f.Search)
		conditions := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, column := range searchColumns {
			conditions[i] = Like(column)
			args[i] = pattern
		}
		tx = tx.Where(strings.Join(conditions, " OR "), args...)
	}

	if f.DepartmentID != nil {
		tx = tx.Where("employees.department_id = ?", *f.DepartmentID)
	}

	// created_at is compared by calendar day in l.loc
	if f.CreatedFrom != nil {
		tx = tx.Where("employees.created_at >= ?", startOfDay(f.CreatedFrom.In(l.loc)).UTC())
	}
	if f.CreatedUntil != nil {
		tx = tx.Where("employees.created_at < ?", startOfDay(f.CreatedUntil.In(l.loc)).AddDate(0, 0, 1).UTC())
	}

	if r, ok := TabRange(f.Tab, l.now(), l.loc); ok {
		tx = hiredWithin(tx, r)
	}
	return tx
}

func hiredWithin(tx *gorm.DB, r DateRange) *gorm.DB {
	return tx.Where("employees.date_hired >= ? AND employees.date_hired < ?",
		r.Start.Format(models.DateLayout), r.End.Format(models.DateLayout))
}

func order(f Filter) string {
	column, ok := sortColumns[f.Sort]
	if !ok {
		return "employees.created_at DESC, employees.id DESC"
	}
	direction := "ASC"
	if f.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, employees.id %s", column, direction, direction)
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Country").Preload("State").Preload("City").Preload("Department")
}

// List returns one page of employees matching f within scope
func (l *Lister) List(ctx context.Context, scope Scope, f Filter) (*Page, error) {
	query := l.apply(l.base(ctx, scope), f).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	var employees []models.Employee
	err := withRelations(query.Select("employees.*")).
		Order(order(f)).
		Limit(f.PerPage).
		Offset((f.Page - 1) * f.PerPage).
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	lastPage := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	indicators, err := l.indicators(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	return &Page{
		Employees: employees,
		Meta: Meta{
			CurrentPage: f.Page,
			PerPage:     f.PerPage,
			Total:       total,
			LastPage:    lastPage,
			Tab:         f.Tab,
			Indicators:  indicators,
		},
	}, nil
}

// All returns every employee matching f within scope, used by exports
func (l *Lister) All(ctx context.Context, scope Scope, f Filter) ([]models.Employee, error) {
	var employees []models.Employee
	err := withRelations(l.apply(l.base(ctx, scope), f).Select("employees.*")).
		Order(order(f)).
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	return employees, nil
}

// Count returns the number of live employees in scope
func (l *Lister) Count(ctx context.Context, scope Scope) (int64, error) {
	var total int64
	if err := l.base(ctx, scope).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

// CountTabs returns every tab with the number of employees in scope it shows
func (l *Lister) CountTabs(ctx context.Context, scope Scope) ([]TabCount, error) {
	now := l.now()
	counts := make([]TabCount, 0, len(Tabs))
	for _, tab := range Tabs {
		tx := l.base(ctx, scope)
		if r, ok := TabRange(tab, now, l.loc); ok {
			tx = hiredWithin(tx, r)
		}

		var total int64
		if err := tx.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count tab %s: %w", tab, err)
		}
		counts = append(counts, TabCount{Key: tab, Label: tab.Label(), Count: total})
	}
	return counts, nil
}

// indicators names the department only when it is visible within scope
func (l *Lister) indicators(ctx context.Context, scope Scope, f Filter) ([]string, error) {
	var name string
	if f.DepartmentID != nil {
		tx := l.db.WithContext(ctx).Select("name").Where("id = ?", *f.DepartmentID)
		if scope.TenantID != nil {
			tx = tx.Where("tenant_id = ?", *scope.TenantID)
		}
		var dept models.Department
		err := tx.Limit(1).Find(&dept).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load department: %w", err)
		}
		name = dept.Name
	}
	return f.Indicators(name), nil
}

// Find returns the live employee id when it is inside scope
func (l *Lister) Find(ctx context.Context, scope Scope, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := withRelations(l.base(ctx, scope).Select("employees.*")).
		Where("employees.id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindMany returns the live employees among ids that are inside scope
func (l *Lister) FindMany(ctx context.Context, scope Scope, ids []uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := withRelations(l.base(ctx, scope).Select("employees.*")).
		Where("employees.id IN ?", ids).
		Order("employees.id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	return employees, nil
}

// MatchNames returns live employees in scope whose first, last or middle name contains term
func (l *Lister) MatchNames(ctx context.Context, scope Scope, term string, limit int) ([]models.Employee, error) {
	pattern := Contains(term)

	var employees []models.Employee
	err := l.base(ctx, scope).Select("employees.*").
		Preload("Country").
		Where(Like("employees.first_name")+" OR "+Like("employees.last_name")+" OR "+Like("employees.middle_name"),
			pattern, pattern, pattern).
		Order("employees.last_name ASC, employees.first_name ASC, employees.id ASC").
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return employees, nil
}
