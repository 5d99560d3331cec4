package strategy

import (
	"fmt"
	"sort"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Sub-calculations shared by every evaluator: ARV, rehab cost, and market
// rent. Each respects the corresponding override and never invents market
// data beyond the supplied profile.

const (
	agePenaltyPerYear = 0.002
	ageFactorFloor    = 0.6
	ageFactorCeiling  = 1.0
)

// EstimateARV returns the after-repair value: override if present,
// otherwise square feet times the market's median price per square foot,
// discounted by property age and rounded to whole dollars.
func EstimateARV(in Inputs) core.Money {
	if in.Facts.Overrides.ARV != nil {
		return *in.Facts.Overrides.ARV
	}

	age := in.Now.Year() - in.Facts.YearBuilt
	factor := 1 - float64(age)*agePenaltyPerYear
	if factor < ageFactorFloor {
		factor = ageFactorFloor
	}
	if factor > ageFactorCeiling {
		factor = ageFactorCeiling
	}

	arv := in.Market.MedianPricePerSqFt.MulInt(in.Facts.SquareFeet).MulRate(factor)
	return arv.RoundDollar()
}

// RehabEstimate carries the chosen rehab cost with its provenance.
type RehabEstimate struct {
	Cost       core.Money
	Confidence int
	Basis      string // "override", "per_sqft", or "itemized"
	Breakdown  map[string]core.Money
}

// EstimateRehab computes the per-square-foot and itemized estimates and
// keeps the larger. Severity tier follows condition: good maps to light,
// fair to medium, poor and needs_rehab to heavy; excellent needs nothing.
func EstimateRehab(in Inputs) RehabEstimate {
	if in.Facts.Overrides.RehabCost != nil {
		return RehabEstimate{
			Cost:       *in.Facts.Overrides.RehabCost,
			Confidence: 85,
			Basis:      "override",
		}
	}

	perSqFtRate := in.Config.RehabCostPerSqFt[in.Facts.Condition]
	perSqFt := core.Dollars(perSqFtRate).MulInt(in.Facts.SquareFeet).RoundDollar()

	severity := severityFor(in.Facts.Condition)
	var itemized core.Money
	var breakdown map[string]core.Money
	if severity != "" {
		breakdown = make(map[string]core.Money, len(in.Config.RoomCostTable))
		for _, category := range sortedCategories(in.Config.RoomCostTable) {
			cost := roomCost(in.Config.RoomCostTable[category], severity)
			breakdown[category] = cost
			itemized += cost
		}
	}

	est := RehabEstimate{Confidence: rehabConfidence(in.Facts.Condition)}
	if itemized > perSqFt {
		est.Cost = itemized
		est.Basis = "itemized"
		est.Breakdown = breakdown
	} else {
		est.Cost = perSqFt
		est.Basis = "per_sqft"
	}
	return est
}

// EstimateRent returns the monthly market rent, override-respecting.
func EstimateRent(in Inputs) core.Money {
	if in.Facts.Overrides.MarketRent != nil {
		return *in.Facts.Overrides.MarketRent
	}
	return in.Market.RentPerSqFt.MulInt(in.Facts.SquareFeet).RoundDollar()
}

// OverridePenalty is subtracted from an evaluator's confidence when the
// caller supplied any override without provenance.
const OverridePenalty = 10

// AdjustConfidence applies the override penalty, clamped to [0, 100].
func AdjustConfidence(base int, overrides core.Overrides) int {
	c := base
	if overrides.Any() {
		c -= OverridePenalty
	}
	if c < 0 {
		c = 0
	}
	if c > 100 {
		c = 100
	}
	return c
}

// RatioPct returns num/den as percentage points, 0 when den is zero.
func RatioPct(num, den core.Money) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

func rehabConfidence(c core.Condition) int {
	// Mid-range conditions estimate best; extremes carry more unknowns.
	switch c {
	case core.ConditionFair, core.ConditionPoor:
		return 85
	default:
		return 70
	}
}

func severityFor(c core.Condition) string {
	switch c {
	case core.ConditionGood:
		return "light"
	case core.ConditionFair:
		return "medium"
	case core.ConditionPoor, core.ConditionNeedsRehab:
		return "heavy"
	default:
		return ""
	}
}

func roomCost(rc config.RoomCost, severity string) core.Money {
	switch severity {
	case "light":
		return core.Dollars(rc.Light)
	case "medium":
		return core.Dollars(rc.Medium)
	case "heavy":
		return core.Dollars(rc.Heavy)
	default:
		return 0
	}
}

func sortedCategories(table map[string]config.RoomCost) []string {
	categories := make([]string, 0, len(table))
	for c := range table {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// BasisNote renders the rehab provenance note evaluators attach to results.
func BasisNote(est RehabEstimate) string {
	return fmt.Sprintf("rehab basis: %s", est.Basis)
}
