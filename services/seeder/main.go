package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@admin.com"
	adminPassword = "password"
)

// starterLocations is the hierarchy available on a fresh install
var starterLocations = map[string]map[string][]string{
	"Philippines": {
		"Metro Manila": {"Makati", "Quezon City", "Taguig"},
		"Cebu":         {"Cebu City", "Lapu-Lapu"},
	},
	"United States": {
		"California": {"Los Angeles", "San Francisco"},
		"New York":   {"New York City", "Buffalo"},
	},
}

// Seed creates the admin account and the starter locations. Rows that already exist are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx); err != nil {
			return err
		}
		return seedLocations(tx)
	})
}

func seedAdmin(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	logrus.WithField("email", adminEmail).Info("Seeded admin user")
	return nil
}

func seedLocations(tx *gorm.DB) error {
	for countryName, states := range starterLocations {
		country := models.Country{Name: countryName}
		if err := tx.Where("name = ?", countryName).FirstOrCreate(&country).Error; err != nil {
			return fmt.Errorf("failed to seed country %s: %w", countryName, err)
		}

		for stateName, cities := range states {
			state := models.State{CountryID: country.ID, Name: stateName}
			if err := tx.Where("country_id = ? AND name = ?", country.ID, stateName).FirstOrCreate(&state).Error; err != nil {
				return fmt.Errorf("failed to seed state %s: %w", stateName, err)
			}

			for _, cityName := range cities {
				city := models.City{StateID: state.ID, Name: cityName}
				if err := tx.Where("state_id = ? AND name = ?", state.ID, cityName).FirstOrCreate(&city).Error; err != nil {
					return fmt.Errorf("failed to seed city %s: %w", cityName, err)
				}
			}
		}
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	logger := config.ConfigureLogger(cfg)

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: ", err)
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := Seed(ctx, db); err != nil {
		logger.Fatal("Seeding failed: ", err)
	}
	logger.Info("Database seeded")
}
