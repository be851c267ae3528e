package models

import "time"

// SalesRecord is one normalized row of the historical automobile sales
// dataset. Nullable columns are pointers; nil means the source had no value.
type SalesRecord struct {
	Year  int       `json:"year"`
	Month int       `json:"month,omitempty"` // 1-12, 0 when the dataset carries no Month column
	Date  time.Time `json:"date"`

	VehicleType            string   `json:"vehicle_type"`
	Recession              int      `json:"recession"` // 0 or 1
	AutomobileSales        float64  `json:"automobile_sales"`
	GDP                    *float64 `json:"gdp"`
	SeasonalityWeight      float64  `json:"seasonality_weight"`
	AdvertisingExpenditure float64  `json:"advertising_expenditure"`
	UnemploymentRate       *float64 `json:"unemployment_rate"`
	ConsumerConfidence     *float64 `json:"consumer_confidence"`
	AvgVehiclePrice        *float64 `json:"avg_vehicle_price"`
}

// FilterSelection carries the user's current constraints. An empty
// RecessionValues or VehicleTypes set matches NOTHING, not everything:
// deselecting every option is a deliberate "show no rows".
type FilterSelection struct {
	RecessionValues []int    `json:"recession_values"`
	VehicleTypes    []string `json:"vehicle_types"`
	YearRange       [2]int   `json:"year_range"` // inclusive [min, max]

	// Expression is an optional boolean filter expression evaluated
	// against each record, ANDed with the structural predicates.
	Expression string `json:"expression,omitempty"`
}

// TimeSeriesRow is one point of the time series view: the mean of the chosen
// metric per (year, vehicle type). MeanValue is nil when every value in the
// group was null (possible for GDP).
type TimeSeriesRow struct {
	Year        int      `json:"year"`
	VehicleType string   `json:"vehicle_type"`
	MeanValue   *float64 `json:"mean_value"`
}

// ComparisonRow is one bar of the vehicle-type comparison view.
type ComparisonRow struct {
	VehicleType string  `json:"vehicle_type"`
	Phase       string  `json:"phase"` // "Recession" or "Non-Recession"
	MeanSales   float64 `json:"mean_sales"`
}

// BubbleRow is one bubble of the seasonality view (non-recession rows only).
type BubbleRow struct {
	Month           int     `json:"month"`
	MeanSales       float64 `json:"mean_sales"`
	MeanSeasonality float64 `json:"mean_seasonality"`
}

// PieSlice is one slice of the recession advertising-expenditure pie.
type PieSlice struct {
	VehicleType        string  `json:"vehicle_type"`
	TotalAdExpenditure float64 `json:"total_ad_expenditure"`
}

// ScatterRow is one raw point of the unemployment-vs-sales view, sorted
// ascending by unemployment rate (null rates last).
type ScatterRow struct {
	UnemploymentRate *float64 `json:"unemployment_rate"`
	AutomobileSales  float64  `json:"automobile_sales"`
	VehicleType      string   `json:"vehicle_type"`
}

// ViewResult is what a view dispatch produces. On success Rows holds the
// view's typed row slice; when the view's restricted row set is empty, Empty
// is set and Reason carries a human-readable explanation for the renderer.
type ViewResult struct {
	View   string `json:"view"`
	Rows   any    `json:"rows,omitempty"`
	Empty  bool   `json:"empty,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Meta describes the loaded dataset for the dashboard controls.
type Meta struct {
	MinYear      int      `json:"min_year"`
	MaxYear      int      `json:"max_year"`
	VehicleTypes []string `json:"vehicle_types"`
	Views        []string `json:"views"`
	Metrics      []string `json:"metrics"`
}
