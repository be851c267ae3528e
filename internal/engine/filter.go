package engine

import (
	"fmt"

	"github.com/hashicorp/go-bexpr"

	"dashboard/internal/models"
)

// Filter applies the selection to the store and returns matching rows in
// their original order. All predicates are ANDed. An empty recession or
// vehicle-type set matches nothing; the membership test runs even when the
// set is empty, never degrading to "no filter".
func Filter(store *RecordStore, sel models.FilterSelection) ([]models.SalesRecord, error) {
	recessions := make(map[int]bool, len(sel.RecessionValues))
	for _, v := range sel.RecessionValues {
		recessions[v] = true
	}
	vehicles := make(map[string]bool, len(sel.VehicleTypes))
	for _, v := range sel.VehicleTypes {
		vehicles[v] = true
	}

	var eval *bexpr.Evaluator
	if sel.Expression != "" {
		var err error
		eval, err = bexpr.CreateEvaluator(sel.Expression)
		if err != nil {
			return nil, fmt.Errorf("parsing filter expression %q: %w", sel.Expression, err)
		}
	}

	out := make([]models.SalesRecord, 0, store.Len())
	for _, r := range store.Records() {
		if !recessions[r.Recession] || !vehicles[r.VehicleType] {
			continue
		}
		if r.Year < sel.YearRange[0] || r.Year > sel.YearRange[1] {
			continue
		}
		if eval != nil {
			ok, err := eval.Evaluate(exprVars(r))
			if err != nil {
				return nil, fmt.Errorf("evaluating filter expression %q: %w", sel.Expression, err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// exprVars flattens a record into the variable map the expression evaluator
// sees. Null columns are omitted, so expressions referencing them fail on
// rows where they are absent rather than comparing against a fake zero.
func exprVars(r models.SalesRecord) map[string]any {
	vars := map[string]any{
		"year":                    r.Year,
		"month":                   r.Month,
		"vehicle_type":            r.VehicleType,
		"recession":               r.Recession,
		"automobile_sales":        r.AutomobileSales,
		"seasonality_weight":      r.SeasonalityWeight,
		"advertising_expenditure": r.AdvertisingExpenditure,
	}
	if r.GDP != nil {
		vars["gdp"] = *r.GDP
	}
	if r.UnemploymentRate != nil {
		vars["unemployment_rate"] = *r.UnemploymentRate
	}
	if r.ConsumerConfidence != nil {
		vars["consumer_confidence"] = *r.ConsumerConfidence
	}
	if r.AvgVehiclePrice != nil {
		vars["avg_vehicle_price"] = *r.AvgVehiclePrice
	}
	return vars
}
