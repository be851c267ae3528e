package engine

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"dashboard/internal/models"
)

// ColumnSet records which columns the source file carried. Normalization and
// the views need to distinguish "column absent" from "value zero".
type ColumnSet struct {
	Month              bool
	VehicleType        bool
	Recession          bool
	AutomobileSales    bool
	GDP                bool
	SeasonalityWeight  bool
	Advertising        bool
	UnemploymentRate   bool
	ConsumerConfidence bool
	AvgVehiclePrice    bool
}

// --- FAST PARSERS ---

// fastInt parses "123" -> 123. No sign, no validation; callers guard.
func fastInt(b []byte) int {
	var n int
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

// fastFloat parses "123.45" -> 123.45, with an optional leading minus.
func fastFloat(b []byte) float64 {
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}
	var num float64
	var i int
	for i < len(b) && b[i] != '.' {
		num = num*10 + float64(b[i]-'0')
		i++
	}
	if i < len(b) {
		i++
		div := 10.0
		for i < len(b) {
			num += float64(b[i]-'0') / div
			div *= 10
			i++
		}
	}
	if neg {
		return -num
	}
	return num
}

func isDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// The published dataset spells months out ("January"); some exports use
// numbers or three-letter abbreviations. Accept all three.
var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
}

func parseMonth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if isDigits(b) {
		if m := fastInt(b); m >= 1 && m <= 12 {
			return m
		}
		return 0
	}
	return monthNames[strings.ToLower(string(b))]
}

// --- MAIN LOADER ---

// LoadRecords reads the sales dataset CSV. Only the Year column is required;
// every other column may be absent and gets its documented default at store
// construction. Blank cells of nullable columns become nil.
func LoadRecords(path string) ([]models.SalesRecord, ColumnSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ColumnSet{}, fmt.Errorf("reading dataset: %w", err)
	}
	return ParseRecords(content)
}

// ParseRecords parses raw CSV bytes into records plus the set of columns the
// header declared. A missing Year column or an unparseable year cell is an
// error: the dataset is unusable without it.
func ParseRecords(content []byte) ([]models.SalesRecord, ColumnSet, error) {
	header, body, _ := bytes.Cut(content, []byte{'\n'})
	header = bytes.TrimSuffix(header, []byte{'\r'})

	idx := make(map[string]int)
	for i, name := range strings.Split(string(header), ",") {
		idx[strings.TrimSpace(name)] = i
	}
	yearCol, ok := idx["Year"]
	if !ok {
		return nil, ColumnSet{}, fmt.Errorf("dataset has no Year column")
	}

	col := func(name string) (int, bool) {
		i, ok := idx[name]
		return i, ok
	}
	monthCol, hasMonth := col("Month")
	vehicleCol, hasVehicle := col("Vehicle_Type")
	recessionCol, hasRecession := col("Recession")
	salesCol, hasSales := col("Automobile_Sales")
	gdpCol, hasGDP := col("GDP")
	seasonCol, hasSeason := col("Seasonality_Weight")
	adCol, hasAd := col("Advertising_Expenditure")
	unempCol, hasUnemp := col("Unemployment_Rate")
	confCol, hasConf := col("Consumer_Confidence")
	priceCol, hasPrice := col("Avg_Vehicle_Price")

	cols := ColumnSet{
		Month:              hasMonth,
		VehicleType:        hasVehicle,
		Recession:          hasRecession,
		AutomobileSales:    hasSales,
		GDP:                hasGDP,
		SeasonalityWeight:  hasSeason,
		Advertising:        hasAd,
		UnemploymentRate:   hasUnemp,
		ConsumerConfidence: hasConf,
		AvgVehiclePrice:    hasPrice,
	}

	records := make([]models.SalesRecord, 0, bytes.Count(body, []byte{'\n'})+1)
	fields := make([][]byte, 0, len(idx))
	sep := []byte{','}
	lineNo := 1

	for len(body) > 0 {
		var line []byte
		line, body, _ = bytes.Cut(body, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		lineNo++
		if len(line) == 0 {
			continue
		}

		fields = fields[:0]
		rest := line
		for {
			field, after, found := bytes.Cut(rest, sep)
			fields = append(fields, field)
			if !found {
				break
			}
			rest = after
		}

		cell := func(i int, present bool) []byte {
			if !present || i >= len(fields) {
				return nil
			}
			return fields[i]
		}
		nullable := func(i int, present bool) *float64 {
			b := cell(i, present)
			if len(b) == 0 {
				return nil
			}
			v := fastFloat(b)
			return &v
		}

		yearField := cell(yearCol, true)
		if !isDigits(yearField) {
			return nil, cols, fmt.Errorf("line %d: unparseable Year value %q", lineNo, yearField)
		}

		rec := models.SalesRecord{
			Year:               fastInt(yearField),
			Month:              parseMonth(cell(monthCol, hasMonth)),
			GDP:                nullable(gdpCol, hasGDP),
			UnemploymentRate:   nullable(unempCol, hasUnemp),
			ConsumerConfidence: nullable(confCol, hasConf),
			AvgVehiclePrice:    nullable(priceCol, hasPrice),
		}
		if b := cell(vehicleCol, hasVehicle); len(b) > 0 {
			rec.VehicleType = string(b)
		}
		if b := cell(recessionCol, hasRecession); len(b) > 0 {
			rec.Recession = fastInt(b)
		}
		if b := cell(salesCol, hasSales); len(b) > 0 {
			rec.AutomobileSales = fastFloat(b)
		}
		if b := cell(seasonCol, hasSeason); len(b) > 0 {
			rec.SeasonalityWeight = fastFloat(b)
		}
		if b := cell(adCol, hasAd); len(b) > 0 {
			rec.AdvertisingExpenditure = fastFloat(b)
		}
		records = append(records, rec)
	}

	return records, cols, nil
}
