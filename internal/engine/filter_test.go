package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/models"
)

func filterTestStore() *RecordStore {
	return NewRecordStore([]models.SalesRecord{
		{Year: 2018, Month: 1, VehicleType: "Sports", Recession: 0, AutomobileSales: 500},
		{Year: 2019, Month: 2, VehicleType: "Executivecar", Recession: 0, AutomobileSales: 300},
		{Year: 2020, Month: 3, VehicleType: "Sports", Recession: 1, AutomobileSales: 80},
		{Year: 2021, Month: 4, VehicleType: "Smallfamiliycar", Recession: 1, AutomobileSales: 120},
	}, allColumns())
}

func selectAll(store *RecordStore) models.FilterSelection {
	minYear, maxYear := store.YearSpan()
	return models.FilterSelection{
		RecessionValues: []int{0, 1},
		VehicleTypes:    store.VehicleTypes(),
		YearRange:       [2]int{minYear, maxYear},
	}
}

func TestFilterEmptySetsMatchNothing(t *testing.T) {
	store := filterTestStore()

	// Deselecting every recession option means "show nothing", even though
	// the other filters are wide open.
	sel := selectAll(store)
	sel.RecessionValues = nil
	rows, err := Filter(store, sel)
	require.NoError(t, err)
	assert.Empty(t, rows)

	sel = selectAll(store)
	sel.VehicleTypes = nil
	rows, err = Filter(store, sel)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFilterIsTrueIntersection(t *testing.T) {
	store := filterTestStore()

	sel := models.FilterSelection{
		RecessionValues: []int{0, 1},
		VehicleTypes:    []string{"Sports"},
		YearRange:       [2]int{2019, 2020},
	}
	rows, err := Filter(store, sel)
	require.NoError(t, err)

	// Only the 2020 Sports row satisfies every predicate at once.
	require.Len(t, rows, 1)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, "Sports", rows[0].VehicleType)
}

func TestFilterPreservesRowOrder(t *testing.T) {
	store := filterTestStore()
	rows, err := Filter(store, selectAll(store))
	require.NoError(t, err)

	require.Len(t, rows, 4)
	years := []int{rows[0].Year, rows[1].Year, rows[2].Year, rows[3].Year}
	assert.Equal(t, []int{2018, 2019, 2020, 2021}, years)
}

func TestFilterYearRangeInclusive(t *testing.T) {
	store := filterTestStore()
	sel := selectAll(store)
	sel.YearRange = [2]int{2019, 2019}

	rows, err := Filter(store, sel)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Executivecar", rows[0].VehicleType)
}

func TestFilterExpression(t *testing.T) {
	store := filterTestStore()

	sel := selectAll(store)
	sel.Expression = "automobile_sales > 100 and recession == 0"
	rows, err := Filter(store, sel)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sports", rows[0].VehicleType)
	assert.Equal(t, "Executivecar", rows[1].VehicleType)
}

func TestFilterExpressionParseError(t *testing.T) {
	store := filterTestStore()
	sel := selectAll(store)
	sel.Expression = "automobile_sales >>> 100"

	_, err := Filter(store, sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing filter expression")
}
