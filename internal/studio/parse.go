package studio

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
)

// ParseAmount parses user text such as "12.5" or "12,50" into a
// non-negative amount rounded to cents. A comma is only accepted as the
// decimal separator, so "1,000" is rejected rather than read as 1.00.
func ParseAmount(field, text string) (decimal.Decimal, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: "is required"}
	}
	if strings.Contains(t, ",") {
		whole, frac, _ := strings.Cut(t, ",")
		if strings.ContainsAny(whole, ".") || strings.ContainsAny(frac, ".,") || len(frac) > 2 {
			return decimal.Zero, &model.ValidationError{Field: field, Reason: "use a single decimal separator and no thousands separators"}
		}
		t = whole + "." + frac
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: "must be a number"}
	}
	return requireAmount(field, d)
}

// ParseOptionalAmount is ParseAmount with blank input meaning zero.
func ParseOptionalAmount(field, text string) (decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(field, text)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(text string) (time.Time, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return time.Time{}, &model.ValidationError{Field: "date", Reason: "is required"}
	}
	d, err := model.ParseDate(t)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: "date", Reason: "use YYYY-MM-DD"}
	}
	return d, nil
}

// ParseID parses a positive entity id.
func ParseID(field, text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: field, Reason: "must be a positive whole number"}
	}
	return id, nil
}

// ParsePeriod resolves a schedule period name.
func ParsePeriod(text string) (pipeline.Period, error) {
	p, err := pipeline.ParsePeriod(text)
	if err != nil {
		return "", &model.ValidationError{Field: "period", Reason: err.Error()}
	}
	return p, nil
}
