// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh migrated database that lives as long as the test
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Fixture is a small location hierarchy with one tenant and two departments
type Fixture struct {
	Tenant      models.Tenant
	OtherTenant models.Tenant
	Country     models.Country
	State       models.State
	City        models.City
	OtherState  models.State
	OtherCity   models.City
	Engineering models.Department
	Sales       models.Department
	Foreign     models.Department
}

// Seed inserts a Fixture into db
func Seed(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{
		Tenant:      models.Tenant{Name: "Acme", Slug: "acme", IsActive: true},
		OtherTenant: models.Tenant{Name: "Globex", Slug: "globex", IsActive: true},
		Country:     models.Country{Name: "Philippines"},
	}
	must(t, db.Create(&f.Tenant).Error)
	must(t, db.Create(&f.OtherTenant).Error)
	must(t, db.Create(&f.Country).Error)

	f.State = models.State{CountryID: f.Country.ID, Name: "Metro Manila"}
	f.OtherState = models.State{CountryID: f.Country.ID, Name: "Cebu"}
	must(t, db.Create(&f.State).Error)
	must(t, db.Create(&f.OtherState).Error)

	f.City = models.City{StateID: f.State.ID, Name: "Makati"}
	f.OtherCity = models.City{StateID: f.OtherState.ID, Name: "Cebu City"}
	must(t, db.Create(&f.City).Error)
	must(t, db.Create(&f.OtherCity).Error)

	f.Engineering = models.Department{TenantID: f.Tenant.ID, Name: "Engineering"}
	f.Sales = models.Department{TenantID: f.Tenant.ID, Name: "Sales"}
	f.Foreign = models.Department{TenantID: f.OtherTenant.ID, Name: "Logistics"}
	must(t, db.Create(&f.Engineering).Error)
	must(t, db.Create(&f.Sales).Error)
	must(t, db.Create(&f.Foreign).Error)

	return f
}

// Employee builds an unsaved employee living in the fixture's city
func (f *Fixture) Employee(first, last string, dept models.Department, hired time.Time) models.Employee {
	return models.Employee{
		CountryID:    f.Country.ID,
		StateID:      f.State.ID,
		CityID:       f.City.ID,
		DepartmentID: dept.ID,
		FirstName:    first,
		LastName:     last,
		MiddleName:   "M",
		Address:      "1 Ayala Ave",
		ZipCode:      "1226",
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		DateHired:    hired,
	}
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
