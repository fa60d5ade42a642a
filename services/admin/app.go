package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/location"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds the dependencies shared by the admin handlers
type App struct {
	cfg       *config.Config
	db        *gorm.DB
	logger    *logrus.Logger
	issuer    *utils.TokenIssuer
	lister    *listing.Lister
	locations *location.Service
	events    EventPublisher
	exporter  *Exporter
	now       func() time.Time
}

func NewApp(cfg *config.Config, db *gorm.DB, logger *logrus.Logger, events EventPublisher, exporter *Exporter) *App {
	return &App{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		issuer:    utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		lister:    listing.NewLister(db, cfg.Location()),
		locations: location.NewService(db, cfg.Redis.OptionTTL),
		events:    events,
		exporter:  exporter,
		now:       time.Now,
	}
}

// setupRouter registers every admin route
func setupRouter(app *App) (*gin.Engine, error) {
	authMiddleware := middleware.NewAuthMiddleware(app.issuer)

	loginLimit, err := middleware.RateLimit(app.cfg.Auth.LoginRateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to configure login rate limit: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(app.logger),
		middleware.Metrics(),
		middleware.Cors(app.cfg.AllowedOrigins...),
	)

	router.GET("/health", func(c *gin.Context) {
		utils.OKResponse(c, "Admin service is healthy", nil)
	})
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", loginLimit, handleLogin(app.db, app.issuer))
		auth.POST("/logout", authMiddleware.RequireAuth(), handleLogout())
		auth.GET("/me", authMiddleware.RequireAuth(), handleMe(app.db))
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())

	locations := protected.Group("/locations")
	{
		locations.GET("/countries", handleCountryOptions(app.locations))
		locations.GET("/states", handleStateOptions(app.locations))
		locations.GET("/cities", handleCityOptions(app.locations))
		locations.POST("/selection", handleLocationSelection(app.locations))
	}

	// the location hierarchy is shared by every tenant: anyone may read it, only admins change it
	locationAdmin := authMiddleware.RequireAdmin()

	countries := protected.Group("/countries")
	{
		countries.GET("", handleListCountries(app.db))
		countries.GET("/:id", handleGetCountry(app.db))
		countries.POST("", locationAdmin, handleCreateCountry(app.db, app.locations))
		countries.PUT("/:id", locationAdmin, handleUpdateCountry(app.db, app.locations))
		countries.DELETE("/:id", locationAdmin, handleDeleteCountry(app.db, app.locations))
	}

	states := protected.Group("/states")
	{
		states.GET("", handleListStates(app.db))
		states.GET("/:id", handleGetState(app.db))
		states.POST("", locationAdmin, handleCreateState(app.db, app.locations))
		states.PUT("/:id", locationAdmin, handleUpdateState(app.db, app.locations))
		states.DELETE("/:id", locationAdmin, handleDeleteState(app.db, app.locations))
	}

	cities := protected.Group("/cities")
	{
		cities.GET("", handleListCities(app.db))
		cities.GET("/:id", handleGetCity(app.db))
		cities.POST("", locationAdmin, handleCreateCity(app.db, app.locations))
		cities.PUT("/:id", locationAdmin, handleUpdateCity(app.db, app.locations))
		cities.DELETE("/:id", locationAdmin, handleDeleteCity(app.db, app.locations))

		cities.GET("/:id/employees", handleRelationEmployees(app, relationCity))
		cities.POST("/:id/employees", handleRelationCreateEmployee(app, relationCity))
		cities.PUT("/:id/employees/:employee_id", handleRelationReadOnly())
		cities.DELETE("/:id/employees/:employee_id", handleRelationReadOnly())
	}

	departments := protected.Group("/departments")
	{
		departments.GET("", handleListDepartments(app.db))
		departments.POST("", handleCreateDepartment(app.db))
		departments.GET("/:id", handleGetDepartment(app.db))
		departments.PUT("/:id", handleUpdateDepartment(app.db))
		departments.DELETE("/:id", handleDeleteDepartment(app.db))

		departments.GET("/:id/employees", handleRelationEmployees(app, relationDepartment))
		departments.POST("/:id/employees", handleRelationCreateEmployee(app, relationDepartment))
		departments.PUT("/:id/employees/:employee_id", handleRelationReadOnly())
		departments.DELETE("/:id/employees/:employee_id", handleRelationReadOnly())
	}

	employees := protected.Group("/employees")
	{
		employees.GET("", handleListEmployees(app))
		employees.GET("/tabs", handleEmployeeTabs(app.lister))
		employees.GET("/badge", handleEmployeeBadge(app.lister))
		employees.GET("/export", handleExportEmployees(app))
		employees.POST("", handleCreateEmployee(app))
		employees.POST("/bulk-delete", handleBulkDeleteEmployees(app))
		employees.GET("/:id", handleGetEmployee(app))
		employees.PUT("/:id", handleUpdateEmployee(app))
		employees.DELETE("/:id", handleDeleteEmployee(app))
	}

	protected.GET("/search", handleGlobalSearch(app.lister))

	admin := protected.Group("")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.GET("/tenants", handleListTenants(app.db))
		admin.POST("/tenants", handleCreateTenant(app.db))
		admin.GET("/tenants/:id", handleGetTenant(app.db))
		admin.PUT("/tenants/:id", handleUpdateTenant(app.db))
		admin.DELETE("/tenants/:id", handleDeleteTenant(app.db))

		admin.GET("/users", handleListUsers(app.db))
		admin.POST("/users", handleCreateUser(app.db))
		admin.GET("/users/:id", handleGetUser(app.db))
		admin.PUT("/users/:id", handleUpdateUser(app.db))
		admin.DELETE("/users/:id", handleDeleteUser(app.db))
	}

	return router, nil
}
