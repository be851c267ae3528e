package engine

import (
	"sort"
	"time"

	"dashboard/internal/models"
)

// RecordStore holds the normalized dataset. It is built once at startup and
// never mutated afterwards, so concurrent readers need no locking.
type RecordStore struct {
	records  []models.SalesRecord
	hasMonth bool
	minYear  int
	maxYear  int
	vehicles []string
}

// NewRecordStore normalizes the loaded rows: applies documented defaults for
// absent columns, clamps Recession to {0,1} and derives Date (first day of
// Year/Month, or January 1 when the dataset has no Month column).
func NewRecordStore(records []models.SalesRecord, cols ColumnSet) *RecordStore {
	rs := &RecordStore{
		records:  make([]models.SalesRecord, len(records)),
		hasMonth: cols.Month,
	}
	seen := make(map[string]bool)

	for i, r := range records {
		if r.VehicleType == "" {
			r.VehicleType = "Unknown"
		}
		if !cols.SeasonalityWeight {
			r.SeasonalityWeight = 1.0
		}
		if r.Recession != 0 {
			r.Recession = 1
		}

		month := time.January
		if r.Month >= 1 && r.Month <= 12 {
			month = time.Month(r.Month)
		}
		r.Date = time.Date(r.Year, month, 1, 0, 0, 0, 0, time.UTC)

		if i == 0 || r.Year < rs.minYear {
			rs.minYear = r.Year
		}
		if i == 0 || r.Year > rs.maxYear {
			rs.maxYear = r.Year
		}
		if !seen[r.VehicleType] {
			seen[r.VehicleType] = true
			rs.vehicles = append(rs.vehicles, r.VehicleType)
		}
		rs.records[i] = r
	}

	sort.Strings(rs.vehicles)
	return rs
}

// Records returns the normalized rows in load order. Callers must not
// mutate the returned slice.
func (rs *RecordStore) Records() []models.SalesRecord { return rs.records }

func (rs *RecordStore) Len() int { return len(rs.records) }

// HasMonth reports whether the source dataset carried a Month column.
func (rs *RecordStore) HasMonth() bool { return rs.hasMonth }

// YearSpan returns the dataset's [min, max] year, both zero for an empty store.
func (rs *RecordStore) YearSpan() (int, int) { return rs.minYear, rs.maxYear }

// VehicleTypes returns the sorted distinct vehicle types, for the UI controls.
func (rs *RecordStore) VehicleTypes() []string {
	return append([]string(nil), rs.vehicles...)
}
