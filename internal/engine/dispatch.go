package engine

import (
	"errors"
	"fmt"
	"sort"

	"dashboard/internal/models"
)

// View identifiers, matching the dashboard's tab values.
const (
	ViewTimeSeries     = "tab-timeseries"
	ViewVehicleType    = "tab-vehicletype"
	ViewSeasonality    = "tab-bubble"
	ViewAdvertisingPie = "tab-pie"
	ViewUnemployment   = "tab-unemp"
)

var (
	ErrUnknownView   = errors.New("view not found")
	ErrMissingColumn = errors.New("required column missing")
	ErrUnknownMetric = errors.New("unknown metric")
)

const emptyRecessionReason = "no data for recession period with current filters"

// ViewRequest is one dashboard interaction: the active view plus the user's
// filter selection and view-specific parameters.
type ViewRequest struct {
	View      string
	Selection models.FilterSelection
	Metric    string // time series only; empty means automobile sales
}

type aggregator func(store *RecordStore, rows []models.SalesRecord, req ViewRequest) (models.ViewResult, error)

var views = map[string]aggregator{
	ViewTimeSeries:     dispatchTimeSeries,
	ViewVehicleType:    dispatchVehicleComparison,
	ViewSeasonality:    dispatchSeasonality,
	ViewAdvertisingPie: dispatchAdvertisingPie,
	ViewUnemployment:   dispatchUnemployment,
}

// ViewIDs returns the registered view identifiers, sorted.
func ViewIDs() []string {
	ids := make([]string, 0, len(views))
	for id := range views {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dispatch runs the filter once and hands the result to the aggregator
// registered for req.View. Pure: identical inputs always yield an identical
// result, and the store is never touched beyond reads.
func Dispatch(store *RecordStore, req ViewRequest) (models.ViewResult, error) {
	agg, ok := views[req.View]
	if !ok {
		return models.ViewResult{}, fmt.Errorf("%w: %q", ErrUnknownView, req.View)
	}
	rows, err := Filter(store, req.Selection)
	if err != nil {
		return models.ViewResult{}, err
	}
	return agg(store, rows, req)
}

func dispatchTimeSeries(_ *RecordStore, rows []models.SalesRecord, req ViewRequest) (models.ViewResult, error) {
	out, err := aggregateTimeSeries(rows, req.Metric)
	if err != nil {
		return models.ViewResult{}, err
	}
	return models.ViewResult{View: ViewTimeSeries, Rows: out}, nil
}

func dispatchVehicleComparison(_ *RecordStore, rows []models.SalesRecord, _ ViewRequest) (models.ViewResult, error) {
	return models.ViewResult{View: ViewVehicleType, Rows: aggregateVehicleComparison(rows)}, nil
}

func dispatchSeasonality(store *RecordStore, rows []models.SalesRecord, _ ViewRequest) (models.ViewResult, error) {
	if !store.HasMonth() {
		return models.ViewResult{}, fmt.Errorf("%w: Month column not found, cannot build bubble plot", ErrMissingColumn)
	}
	return models.ViewResult{View: ViewSeasonality, Rows: aggregateSeasonality(rows)}, nil
}

func dispatchAdvertisingPie(_ *RecordStore, rows []models.SalesRecord, _ ViewRequest) (models.ViewResult, error) {
	slices := aggregateAdvertisingPie(rows)
	if len(slices) == 0 {
		return models.ViewResult{View: ViewAdvertisingPie, Empty: true, Reason: emptyRecessionReason}, nil
	}
	return models.ViewResult{View: ViewAdvertisingPie, Rows: slices}, nil
}

func dispatchUnemployment(_ *RecordStore, rows []models.SalesRecord, _ ViewRequest) (models.ViewResult, error) {
	points := aggregateUnemployment(rows)
	if len(points) == 0 {
		return models.ViewResult{View: ViewUnemployment, Empty: true, Reason: emptyRecessionReason}, nil
	}
	return models.ViewResult{View: ViewUnemployment, Rows: points}, nil
}
