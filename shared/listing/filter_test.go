package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueryFilter(t *testing.T) {
	dept := uint(3)
	f, errs := Query{
		Search:       "  ana ",
		Sort:         "department.name",
		Direction:    "DESC",
		DepartmentID: &dept,
		CreatedFrom:  "2024-01-02",
		Tab:          "this_month",
		PerPage:      25,
	}.Filter(time.UTC)

	require.Nil(t, errs)
	require.Equal(t, "ana", f.Search)
	require.True(t, f.Desc)
	require.Equal(t, TabThisMonth, f.Tab)
	require.Equal(t, 1, f.Page)
	require.Equal(t, 25, f.PerPage)
	require.Equal(t, day(2024, 1, 2), *f.CreatedFrom)
	require.Nil(t, f.CreatedUntil)
}

func TestQueryFilterDefaults(t *testing.T) {
	f, errs := Query{PerPage: 7}.Filter(time.UTC)
	require.Nil(t, errs)
	require.Equal(t, TabAll, f.Tab)
	require.Equal(t, DefaultPerPage, f.PerPage)
	require.Equal(t, 1, f.Page)
}

func TestQueryFilterErrors(t *testing.T) {
	_, errs := Query{
		Sort:         "password",
		Direction:    "sideways",
		CreatedFrom:  "01/02/2024",
		CreatedUntil: "tomorrow",
		Tab:          "this_decade",
	}.Filter(time.UTC)

	require.Len(t, errs, 5)
	for _, field := range []string{"sort", "direction", "created_from", "created_until", "tab"} {
		require.Contains(t, errs, field)
	}
}

func TestIndicators(t *testing.T) {
	dept := uint(1)
	from := day(2024, 1, 2)
	until := day(2024, 3, 15)

	f := Filter{DepartmentID: &dept, CreatedFrom: &from, CreatedUntil: &until}
	require.Equal(t, []string{
		"Department: Sales",
		"Created from Jan 2, 2024",
		"Created until Mar 15, 2024",
	}, f.Indicators("Sales"))

	require.Empty(t, Filter{}.Indicators(""))
}
