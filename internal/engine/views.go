package engine

import (
	"fmt"
	"sort"

	"dashboard/internal/models"
)

// Metric identifiers for the time series view.
const (
	MetricSales   = "automobile_sales"
	MetricGDP     = "gdp"
	MetricAdSpend = "advertising_expenditure"
)

// Metrics returns the metric identifiers the time series view accepts.
func Metrics() []string {
	return []string{MetricSales, MetricGDP, MetricAdSpend}
}

// meanAcc accumulates a mean that skips null values. A group whose every
// value was null yields a nil mean, not zero.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m *meanAcc) mean() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

func metricGetter(metric string) (func(models.SalesRecord) *float64, error) {
	switch metric {
	case "", MetricSales:
		return func(r models.SalesRecord) *float64 { v := r.AutomobileSales; return &v }, nil
	case MetricGDP:
		return func(r models.SalesRecord) *float64 { return r.GDP }, nil
	case MetricAdSpend:
		return func(r models.SalesRecord) *float64 { v := r.AdvertisingExpenditure; return &v }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
}

// aggregateTimeSeries computes the mean of the chosen metric per
// (year, vehicle type), ordered by year then vehicle type.
func aggregateTimeSeries(rows []models.SalesRecord, metric string) ([]models.TimeSeriesRow, error) {
	get, err := metricGetter(metric)
	if err != nil {
		return nil, err
	}

	type key struct {
		year    int
		vehicle string
	}
	groups := make(map[key]*meanAcc)
	for _, r := range rows {
		k := key{r.Year, r.VehicleType}
		acc := groups[k]
		if acc == nil {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.add(get(r))
	}

	out := make([]models.TimeSeriesRow, 0, len(groups))
	for k, acc := range groups {
		out = append(out, models.TimeSeriesRow{
			Year:        k.year,
			VehicleType: k.vehicle,
			MeanValue:   acc.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].VehicleType < out[j].VehicleType
	})
	return out, nil
}

func phaseLabel(recession int) string {
	if recession == 1 {
		return "Recession"
	}
	return "Non-Recession"
}

// aggregateVehicleComparison computes mean automobile sales per
// (recession phase, vehicle type), non-recession bars first.
func aggregateVehicleComparison(rows []models.SalesRecord) []models.ComparisonRow {
	type key struct {
		recession int
		vehicle   string
	}
	groups := make(map[key]*meanAcc)
	for _, r := range rows {
		k := key{r.Recession, r.VehicleType}
		acc := groups[k]
		if acc == nil {
			acc = &meanAcc{}
			groups[k] = acc
		}
		sales := r.AutomobileSales
		acc.add(&sales)
	}

	type keyed struct {
		key key
		row models.ComparisonRow
	}
	entries := make([]keyed, 0, len(groups))
	for k, acc := range groups {
		entries = append(entries, keyed{k, models.ComparisonRow{
			VehicleType: k.vehicle,
			Phase:       phaseLabel(k.recession),
			MeanSales:   *acc.mean(),
		}})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key.recession != entries[j].key.recession {
			return entries[i].key.recession < entries[j].key.recession
		}
		return entries[i].key.vehicle < entries[j].key.vehicle
	})

	out := make([]models.ComparisonRow, len(entries))
	for i, e := range entries {
		out[i] = e.row
	}
	return out
}

// aggregateSeasonality computes per-month mean sales and mean seasonality
// weight over the non-recession subset only.
func aggregateSeasonality(rows []models.SalesRecord) []models.BubbleRow {
	type accs struct {
		sales  meanAcc
		weight meanAcc
	}
	groups := make(map[int]*accs)
	for _, r := range rows {
		if r.Recession != 0 {
			continue
		}
		a := groups[r.Month]
		if a == nil {
			a = &accs{}
			groups[r.Month] = a
		}
		sales, weight := r.AutomobileSales, r.SeasonalityWeight
		a.sales.add(&sales)
		a.weight.add(&weight)
	}

	out := make([]models.BubbleRow, 0, len(groups))
	for month, a := range groups {
		out = append(out, models.BubbleRow{
			Month:           month,
			MeanSales:       *a.sales.mean(),
			MeanSeasonality: *a.weight.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// aggregateAdvertisingPie totals advertising expenditure per vehicle type
// over recession rows only. The restriction runs before grouping, so a
// vehicle type with no recession rows gets no slice at all.
func aggregateAdvertisingPie(rows []models.SalesRecord) []models.PieSlice {
	totals := make(map[string]float64)
	for _, r := range rows {
		if r.Recession != 1 {
			continue
		}
		totals[r.VehicleType] += r.AdvertisingExpenditure
	}

	out := make([]models.PieSlice, 0, len(totals))
	for vehicle, total := range totals {
		out = append(out, models.PieSlice{VehicleType: vehicle, TotalAdExpenditure: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleType < out[j].VehicleType })
	return out
}

// aggregateUnemployment returns the raw recession rows sorted ascending by
// unemployment rate; rows with a null rate sort last, keeping their input
// order among themselves.
func aggregateUnemployment(rows []models.SalesRecord) []models.ScatterRow {
	out := make([]models.ScatterRow, 0, len(rows))
	for _, r := range rows {
		if r.Recession != 1 {
			continue
		}
		out = append(out, models.ScatterRow{
			UnemploymentRate: r.UnemploymentRate,
			AutomobileSales:  r.AutomobileSales,
			VehicleType:      r.VehicleType,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].UnemploymentRate, out[j].UnemploymentRate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
