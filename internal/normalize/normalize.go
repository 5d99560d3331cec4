// Package normalize validates and canonicalizes raw property input.
package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// MinYearBuilt is the oldest construction year accepted.
const MinYearBuilt = 1800

// Normalize canonicalizes a PropertyInput into PropertyFacts. It checks
// every field before failing so a single error lists all problems. The
// reference time bounds year_built; pass a fixed time for reproducibility.
func Normalize(in core.PropertyInput, now time.Time) (core.PropertyFacts, error) {
	var fields []core.FieldError

	city := strings.ToLower(strings.TrimSpace(in.City))
	state := strings.ToUpper(strings.TrimSpace(in.State))
	propertyType := core.PropertyType(strings.ToLower(strings.TrimSpace(in.PropertyType)))
	condition := core.Condition(strings.ToLower(strings.TrimSpace(in.Condition)))

	if in.SquareFeet <= 0 {
		fields = append(fields, core.FieldError{
			Field:   "square_feet",
			Code:    core.CodeInvalidGeometry,
			Message: fmt.Sprintf("square_feet must be positive, got %d", in.SquareFeet),
		})
	}
	if in.Bedrooms < 0 {
		fields = append(fields, core.FieldError{
			Field:   "bedrooms",
			Code:    core.CodeInvalidGeometry,
			Message: fmt.Sprintf("bedrooms cannot be negative, got %d", in.Bedrooms),
		})
	}
	if in.Bathrooms < 0 || !isHalfStep(in.Bathrooms) {
		fields = append(fields, core.FieldError{
			Field:   "bathrooms",
			Code:    core.CodeInvalidGeometry,
			Message: fmt.Sprintf("bathrooms must be a non-negative half step, got %v", in.Bathrooms),
		})
	}
	if in.ListPrice.IsNegative() {
		fields = append(fields, core.FieldError{
			Field:   "list_price",
			Code:    core.CodeInvalidPrice,
			Message: "list_price cannot be negative",
		})
	}
	if !isPropertyType(propertyType) {
		fields = append(fields, core.FieldError{
			Field:   "property_type",
			Code:    core.CodeInvalidEnum,
			Message: fmt.Sprintf("unrecognized property_type %q", in.PropertyType),
		})
	}
	if !isCondition(condition) {
		fields = append(fields, core.FieldError{
			Field:   "condition",
			Code:    core.CodeInvalidEnum,
			Message: fmt.Sprintf("unrecognized condition %q", in.Condition),
		})
	}
	if !isStateCode(state) {
		fields = append(fields, core.FieldError{
			Field:   "state",
			Code:    core.CodeInvalidEnum,
			Message: fmt.Sprintf("state must be two letters, got %q", in.State),
		})
	}
	if in.YearBuilt < MinYearBuilt || in.YearBuilt > now.Year() {
		fields = append(fields, core.FieldError{
			Field:   "year_built",
			Code:    core.CodeInvalidYear,
			Message: fmt.Sprintf("year_built must be within [%d, %d], got %d", MinYearBuilt, now.Year(), in.YearBuilt),
		})
	}
	fields = append(fields, checkOverrides(in.Overrides)...)

	if len(fields) > 0 {
		return core.PropertyFacts{}, &core.ValidationError{Fields: fields}
	}

	return core.PropertyFacts{
		Street:       strings.TrimSpace(in.Street),
		City:         city,
		State:        state,
		PostalCode:   strings.TrimSpace(in.PostalCode),
		PropertyType: propertyType,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		SquareFeet:   in.SquareFeet,
		YearBuilt:    in.YearBuilt,
		ListPrice:    in.ListPrice,
		Condition:    condition,
		Overrides:    in.Overrides,
	}, nil
}

func checkOverrides(o core.Overrides) []core.FieldError {
	var fields []core.FieldError
	checks := []struct {
		name string
		v    *core.Money
	}{
		{"overrides.arv", o.ARV},
		{"overrides.rehab_cost", o.RehabCost},
		{"overrides.market_rent", o.MarketRent},
		{"overrides.purchase_price", o.PurchasePrice},
	}
	for _, c := range checks {
		name, v := c.name, c.v
		if v != nil && v.IsNegative() {
			fields = append(fields, core.FieldError{
				Field:   name,
				Code:    core.CodeInvalidPrice,
				Message: name + " cannot be negative",
			})
		}
	}
	return fields
}

func isHalfStep(bathrooms float64) bool {
	scaled := bathrooms * 2
	return scaled == math.Trunc(scaled)
}

func isPropertyType(t core.PropertyType) bool {
	for _, pt := range core.PropertyTypes {
		if t == pt {
			return true
		}
	}
	return false
}

func isCondition(c core.Condition) bool {
	for _, cc := range core.Conditions {
		if c == cc {
			return true
		}
	}
	return false
}

func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
