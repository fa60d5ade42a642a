package location

import (
	"context"
	"testing"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/dbtest"
	"github.com/stretchr/testify/require"
)

func TestServiceWithoutCache(t *testing.T) {
	db := dbtest.Open(t)
	f := dbtest.Seed(t, db)
	svc := NewService(db, time.Minute)
	ctx := context.Background()

	countries, err := svc.Countries(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []Option{{ID: f.Country.ID, Name: "Philippines"}}, countries)

	states, err := svc.States(ctx, &f.Country.ID, "")
	require.NoError(t, err)
	require.Equal(t, []Option{{f.OtherState.ID, "Cebu"}, {f.State.ID, "Metro Manila"}}, states)

	states, err = svc.States(ctx, &f.Country.ID, "metro")
	require.NoError(t, err)
	require.Len(t, states, 1)

	states, err = svc.States(ctx, nil, "")
	require.NoError(t, err)
	require.Empty(t, states)

	cities, err := svc.Cities(ctx, &f.State.ID, "")
	require.NoError(t, err)
	require.Equal(t, []Option{{f.City.ID, "Makati"}}, cities)

	svc.Invalidate(ctx)
}
