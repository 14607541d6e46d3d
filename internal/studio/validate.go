package studio

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/filmdesk/internal/model"
)

func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &model.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return v, nil
}

func requireAmount(field string, d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: "must not be negative"}
	}
	if !model.InRange(d) {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: "must not exceed " + model.MaxAmount.StringFixed(2)}
	}
	return d.Round(2), nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return &model.ValidationError{Field: field, Reason: "must be set"}
	}
	return nil
}
