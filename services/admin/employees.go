package main

import (
	"context"
	"fmt"

	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkEmployeeReferences verifies that the referenced rows exist, form one
// country/state/city chain and that the department is visible to info.
func checkEmployeeReferences(ctx context.Context, db *gorm.DB, info *models.UserInfo, form *forms.EmployeeForm) error {
	fields := make(map[string]string)
	tx := db.WithContext(ctx)

	var country models.Country
	countryFound, err := findByID(tx, &country, *form.CountryID)
	if err != nil {
		return err
	}
	if !countryFound {
		fields["country_id"] = "The selected country is invalid."
	}

	var state models.State
	stateFound, err := findByID(tx, &state, *form.StateID)
	if err != nil {
		return err
	}
	switch {
	case !stateFound:
		fields["state_id"] = "The selected state is invalid."
	case countryFound && state.CountryID != country.ID:
		fields["state_id"] = "The selected state does not belong to the selected country."
	}

	var city models.City
	cityFound, err := findByID(tx, &city, *form.CityID)
	if err != nil {
		return err
	}
	switch {
	case !cityFound:
		fields["city_id"] = "The selected city is invalid."
	case stateFound && city.StateID != state.ID:
		fields["city_id"] = "The selected city does not belong to the selected state."
	}

	var departments int64
	err = departmentsVisibleTo(tx.Model(&models.Department{}), info).
		Where("departments.id = ?", *form.DepartmentID).
		Count(&departments).Error
	if err != nil {
		return err
	}
	if departments == 0 {
		fields["department_id"] = "The selected department is invalid."
	}

	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func findByID(tx *gorm.DB, dest interface{}, id uint) (bool, error) {
	result := tx.Limit(1).Find(dest, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// validateEmployeeForm runs the field rules and then the reference checks
func validateEmployeeForm(ctx context.Context, db *gorm.DB, info *models.UserInfo, form *forms.EmployeeForm) error {
	if errs, ok := form.Ok(); !ok {
		return apperror.Validation(errs)
	}
	return checkEmployeeReferences(ctx, db, info, form)
}

// createEmployee validates form and inserts the employee. Nothing is written when validation fails.
func createEmployee(ctx context.Context, app *App, info *models.UserInfo, form *forms.EmployeeForm) (*models.Employee, error) {
	if err := validateEmployeeForm(ctx, app.db, info, form); err != nil {
		return nil, err
	}

	var employee models.Employee
	form.Fill(&employee)

	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&employee).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	created, err := app.lister.Find(ctx, tenantScope(info), employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload employee: %w", err)
	}

	app.publish(ctx, EventEmployeeCreated, created, info)
	return created, nil
}

// updateEmployee validates form and saves it over the employee id visible to info
func updateEmployee(ctx context.Context, app *App, info *models.UserInfo, id uint, form *forms.EmployeeForm) (*models.Employee, error) {
	scope := tenantScope(info)
	employee, err := app.lister.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := validateEmployeeForm(ctx, app.db, info, form); err != nil {
		return nil, err
	}
	form.Fill(employee)

	err = app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(employee).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := app.lister.Find(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload employee: %w", err)
	}

	app.publish(ctx, EventEmployeeUpdated, updated, info)
	return updated, nil
}

// deleteEmployees soft-deletes the given employees in one transaction
func deleteEmployees(ctx context.Context, app *App, info *models.UserInfo, employees []models.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Delete(&models.Employee{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete employees: %w", err)
	}

	for i := range employees {
		app.publish(ctx, EventEmployeeDeleted, &employees[i], info)
	}
	return nil
}

// publish queues a lifecycle event. Failures are logged and never fail the request.
func (app *App) publish(ctx context.Context, eventType string, e *models.Employee, info *models.UserInfo) {
	if err := app.events.Publish(newEmployeeEvent(eventType, e, info)); err != nil {
		app.logger.WithContext(ctx).WithError(err).WithField("employee_id", e.ID).Warn("Employee event not queued")
	}
}
