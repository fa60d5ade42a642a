package main

import (
	"context"
	"testing"

	"github.com/pavitra93/go-hr-admin-panel/shared/dbtest"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", adminEmail).Find(&admins).Error)
	require.Len(t, admins, 1)
	require.True(t, admins[0].IsAdmin)
	require.Nil(t, admins[0].TenantID)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte(adminPassword)))

	var countries, states, cities int64
	require.NoError(t, db.Model(&models.Country{}).Count(&countries).Error)
	require.NoError(t, db.Model(&models.State{}).Count(&states).Error)
	require.NoError(t, db.Model(&models.City{}).Count(&cities).Error)
	require.Equal(t, int64(2), countries)
	require.Equal(t, int64(4), states)
	require.Equal(t, int64(9), cities)

	var makati models.City
	require.NoError(t, db.Preload("State.Country").Where("name = ?", "Makati").First(&makati).Error)
	require.Equal(t, "Metro Manila", makati.State.Name)
	require.Equal(t, "Philippines", makati.State.Country.Name)
}
