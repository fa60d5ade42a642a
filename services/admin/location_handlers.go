package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/apperror"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/location"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"gorm.io/gorm"
)

// SelectionRequest changes one selector input
type SelectionRequest struct {
	Selection location.Selection `json:"selection"`
	Field     location.Field     `json:"field" binding:"required"`
	Value     *uint              `json:"value"`
}

// SelectionResponse is the next selector state with the options it allows
type SelectionResponse struct {
	Selection location.Selection `json:"selection"`
	States    []location.Option  `json:"states"`
	Cities    []location.Option  `json:"cities"`
}

// optionalUintQuery reads an optional numeric query parameter
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.ValidationErrorResponse(c, map[string]string{name: "The " + strings.ReplaceAll(name, "_", " ") + " must be an integer."})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func handleCountryOptions(svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		options, err := svc.Countries(c.Request.Context(), c.Query("search"))
		if err != nil {
			respondError(c, err, "Failed to fetch countries")
			return
		}
		utils.OKResponse(c, "Countries retrieved successfully", options)
	}
}

func handleStateOptions(svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		countryID, ok := optionalUintQuery(c, "country_id")
		if !ok {
			return
		}
		options, err := svc.States(c.Request.Context(), countryID, c.Query("search"))
		if err != nil {
			respondError(c, err, "Failed to fetch states")
			return
		}
		utils.OKResponse(c, "States retrieved successfully", options)
	}
}

func handleCityOptions(svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stateID, ok := optionalUintQuery(c, "state_id")
		if !ok {
			return
		}
		options, err := svc.Cities(c.Request.Context(), stateID, c.Query("search"))
		if err != nil {
			respondError(c, err, "Failed to fetch cities")
			return
		}
		utils.OKResponse(c, "Cities retrieved successfully", options)
	}
}

// handleLocationSelection applies one selector change and returns the dependent option sets
func handleLocationSelection(svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectionRequest
		if !bindJSON(c, &req) {
			return
		}

		next, err := req.Selection.Apply(req.Field, req.Value)
		if err != nil {
			utils.ValidationErrorResponse(c, map[string]string{"field": err.Error()})
			return
		}

		ctx := c.Request.Context()
		states, err := svc.States(ctx, next.CountryID, "")
		if err != nil {
			respondError(c, err, "Failed to fetch states")
			return
		}
		cities, err := svc.Cities(ctx, next.StateID, "")
		if err != nil {
			respondError(c, err, "Failed to fetch cities")
			return
		}

		utils.OKResponse(c, "Selection updated", SelectionResponse{
			Selection: next,
			States:    states,
			Cities:    cities,
		})
	}
}

// searchByName applies the optional name search shared by the location tables
func searchByName(c *gin.Context, tx *gorm.DB, table string) *gorm.DB {
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		tx = tx.Where(listing.Like(table+".name"), listing.Contains(term))
	}
	if strings.EqualFold(c.Query("direction"), "desc") {
		return tx.Order(table + ".name DESC")
	}
	return tx.Order(table + ".name ASC")
}

// requireExists fails validation on field when no row of model has id
func requireExists(ctx context.Context, db *gorm.DB, model interface{}, id uint, field, label string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.Field(field, "The selected "+label+" is invalid.")
	}
	return nil
}

// Countries

func handleListCountries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var countries []models.Country
		if err := searchByName(c, db.WithContext(c.Request.Context()), "countries").Find(&countries).Error; err != nil {
			respondError(c, err, "Failed to fetch countries")
			return
		}
		utils.OKResponse(c, "Countries retrieved successfully", countries)
	}
}

func handleGetCountry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var country models.Country
		if err := db.WithContext(c.Request.Context()).Preload("States").First(&country, id).Error; err != nil {
			respondError(c, err, "Country not found")
			return
		}
		utils.OKResponse(c, "Country retrieved successfully", country)
	}
}

func handleCreateCountry(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.CountryForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		country := models.Country{Name: form.Name}
		if err := db.WithContext(c.Request.Context()).Create(&country).Error; err != nil {
			respondError(c, err, "Failed to create country")
			return
		}
		svc.Invalidate(c.Request.Context())

		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), country)
	}
}

func handleUpdateCountry(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var form forms.CountryForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		var country models.Country
		if err := db.WithContext(ctx).First(&country, id).Error; err != nil {
			respondError(c, err, "Country not found")
			return
		}
		country.Name = form.Name
		if err := db.WithContext(ctx).Save(&country).Error; err != nil {
			respondError(c, err, "Failed to update country")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), country)
	}
}

func handleDeleteCountry(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return deleteLocation(db, svc, func() interface{} { return &models.Country{} }, "Country")
}

// States

func handleListStates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		countryID, ok := optionalUintQuery(c, "country_id")
		if !ok {
			return
		}

		tx := db.WithContext(c.Request.Context()).Preload("Country")
		if countryID != nil {
			tx = tx.Where("country_id = ?", *countryID)
		}

		var states []models.State
		if err := searchByName(c, tx, "states").Find(&states).Error; err != nil {
			respondError(c, err, "Failed to fetch states")
			return
		}
		utils.OKResponse(c, "States retrieved successfully", states)
	}
}

func handleGetState(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var state models.State
		if err := db.WithContext(c.Request.Context()).Preload("Country").Preload("Cities").First(&state, id).Error; err != nil {
			respondError(c, err, "State not found")
			return
		}
		utils.OKResponse(c, "State retrieved successfully", state)
	}
}

func handleCreateState(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.StateForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		if err := requireExists(ctx, db, &models.Country{}, *form.CountryID, "country_id", "country"); err != nil {
			respondError(c, err, "Failed to create state")
			return
		}

		state := models.State{CountryID: *form.CountryID, Name: form.Name}
		if err := db.WithContext(ctx).Create(&state).Error; err != nil {
			respondError(c, err, "Failed to create state")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), state)
	}
}

func handleUpdateState(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var form forms.StateForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		var state models.State
		if err := db.WithContext(ctx).First(&state, id).Error; err != nil {
			respondError(c, err, "State not found")
			return
		}
		if err := requireExists(ctx, db, &models.Country{}, *form.CountryID, "country_id", "country"); err != nil {
			respondError(c, err, "Failed to update state")
			return
		}

		state.CountryID = *form.CountryID
		state.Name = form.Name
		if err := db.WithContext(ctx).Omit("Country", "Cities").Save(&state).Error; err != nil {
			respondError(c, err, "Failed to update state")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), state)
	}
}

func handleDeleteState(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return deleteLocation(db, svc, func() interface{} { return &models.State{} }, "State")
}

// Cities

func handleListCities(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stateID, ok := optionalUintQuery(c, "state_id")
		if !ok {
			return
		}

		tx := db.WithContext(c.Request.Context()).Preload("State")
		if stateID != nil {
			tx = tx.Where("state_id = ?", *stateID)
		}

		var cities []models.City
		if err := searchByName(c, tx, "cities").Find(&cities).Error; err != nil {
			respondError(c, err, "Failed to fetch cities")
			return
		}
		utils.OKResponse(c, "Cities retrieved successfully", cities)
	}
}

func handleGetCity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var city models.City
		if err := db.WithContext(c.Request.Context()).Preload("State.Country").First(&city, id).Error; err != nil {
			respondError(c, err, "City not found")
			return
		}
		utils.OKResponse(c, "City retrieved successfully", city)
	}
}

func handleCreateCity(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.CityForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		if err := requireExists(ctx, db, &models.State{}, *form.StateID, "state_id", "state"); err != nil {
			respondError(c, err, "Failed to create city")
			return
		}

		city := models.City{StateID: *form.StateID, Name: form.Name}
		if err := db.WithContext(ctx).Create(&city).Error; err != nil {
			respondError(c, err, "Failed to create city")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusCreated, utils.SuccessNotification("Created", ""), city)
	}
}

func handleUpdateCity(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var form forms.CityForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		ctx := c.Request.Context()
		var city models.City
		if err := db.WithContext(ctx).First(&city, id).Error; err != nil {
			respondError(c, err, "City not found")
			return
		}
		if err := requireExists(ctx, db, &models.State{}, *form.StateID, "state_id", "state"); err != nil {
			respondError(c, err, "Failed to update city")
			return
		}

		city.StateID = *form.StateID
		city.Name = form.Name
		if err := db.WithContext(ctx).Omit("State", "Employees").Save(&city).Error; err != nil {
			respondError(c, err, "Failed to update city")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Saved", ""), city)
	}
}

func handleDeleteCity(db *gorm.DB, svc *location.Service) gin.HandlerFunc {
	return deleteLocation(db, svc, func() interface{} { return &models.City{} }, "City")
}

// deleteLocation removes a country, state or city. Rows that are still
// referenced fail with a foreign key violation and surface as 409.
func deleteLocation(db *gorm.DB, svc *location.Service, newModel func() interface{}, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		ctx := c.Request.Context()
		result := db.WithContext(ctx).Delete(newModel(), id)
		if result.Error != nil {
			respondError(c, result.Error, "Failed to delete "+strings.ToLower(label))
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, gorm.ErrRecordNotFound, label+" not found")
			return
		}
		svc.Invalidate(ctx)

		utils.NotifyResponse(c, http.StatusOK, utils.SuccessNotification("Deleted", ""), nil)
	}
}
