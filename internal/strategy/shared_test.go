package strategy

import (
	"testing"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func houstonInputs() Inputs {
	return Inputs{
		Facts: core.PropertyFacts{
			City:         "houston",
			State:        "TX",
			PropertyType: core.PropertySingleFamily,
			Bedrooms:     3,
			Bathrooms:    2,
			SquareFeet:   1800,
			YearBuilt:    1995,
			ListPrice:    core.Dollars(200000),
			Condition:    core.ConditionFair,
		},
		Market: core.MarketProfile{
			MedianPricePerSqFt: core.Dollars(150),
			RentPerSqFt:        core.Dollars(1.20),
			AnnualAppreciation: 0.05,
		},
		Config: config.DefaultEngine(),
		Now:    testNow,
	}
}

func TestEstimateARV_AgeDiscount(t *testing.T) {
	in := houstonInputs()

	// age 31 => factor 1 - 31*0.002 = 0.938
	want := core.Dollars(1800 * 150 * 0.938)
	if got := EstimateARV(in); got != want {
		t.Errorf("EstimateARV = %s, want %s", got, want)
	}
}

func TestEstimateARV_FactorClamps(t *testing.T) {
	in := houstonInputs()

	// 250 years old: raw factor 0.5 clamps to the 0.6 floor.
	in.Facts.YearBuilt = testNow.Year() - 250
	want := core.Dollars(1800 * 150 * 0.6)
	if got := EstimateARV(in); got != want {
		t.Errorf("old property ARV = %s, want %s", got, want)
	}

	// Brand new: factor capped at 1.0.
	in.Facts.YearBuilt = testNow.Year()
	want = core.Dollars(1800 * 150)
	if got := EstimateARV(in); got != want {
		t.Errorf("new property ARV = %s, want %s", got, want)
	}
}

func TestEstimateARV_Override(t *testing.T) {
	in := houstonInputs()
	override := core.Dollars(300000)
	in.Facts.Overrides.ARV = &override

	if got := EstimateARV(in); got != override {
		t.Errorf("EstimateARV with override = %s, want %s", got, override)
	}
}

func TestEstimateRehab_TakesLargerEstimate(t *testing.T) {
	in := houstonInputs()

	// fair, 1800 sqft: per-sqft 18*1800 = 32400; itemized medium sums to
	// 53000 across the eight categories. Itemized wins.
	est := EstimateRehab(in)
	if est.Cost != core.Dollars(53000) {
		t.Errorf("rehab cost = %s, want 53000.00", est.Cost)
	}
	if est.Basis != "itemized" {
		t.Errorf("basis = %s, want itemized", est.Basis)
	}
	if len(est.Breakdown) != 8 {
		t.Errorf("expected 8 breakdown categories, got %d", len(est.Breakdown))
	}
	if est.Confidence != 85 {
		t.Errorf("confidence = %d, want 85", est.Confidence)
	}
}

func TestEstimateRehab_PerSqFtWinsOnLargeProperty(t *testing.T) {
	in := houstonInputs()
	in.Facts.SquareFeet = 6000

	// 18 * 6000 = 108000 > itemized 53000
	est := EstimateRehab(in)
	if est.Cost != core.Dollars(108000) {
		t.Errorf("rehab cost = %s, want 108000.00", est.Cost)
	}
	if est.Basis != "per_sqft" {
		t.Errorf("basis = %s, want per_sqft", est.Basis)
	}
}

func TestEstimateRehab_ExcellentIsFree(t *testing.T) {
	in := houstonInputs()
	in.Facts.Condition = core.ConditionExcellent

	est := EstimateRehab(in)
	if est.Cost != 0 {
		t.Errorf("excellent condition rehab = %s, want 0", est.Cost)
	}
	if est.Confidence != 70 {
		t.Errorf("confidence = %d, want 70", est.Confidence)
	}
}

func TestEstimateRehab_Override(t *testing.T) {
	in := houstonInputs()
	override := core.Dollars(12345)
	in.Facts.Overrides.RehabCost = &override

	est := EstimateRehab(in)
	if est.Cost != override {
		t.Errorf("rehab with override = %s, want %s", est.Cost, override)
	}
	if est.Basis != "override" {
		t.Errorf("basis = %s, want override", est.Basis)
	}
}

func TestEstimateRent(t *testing.T) {
	in := houstonInputs()

	if got := EstimateRent(in); got != core.Dollars(2160) {
		t.Errorf("rent = %s, want 2160.00", got)
	}

	override := core.Dollars(1900)
	in.Facts.Overrides.MarketRent = &override
	if got := EstimateRent(in); got != override {
		t.Errorf("rent with override = %s, want %s", got, override)
	}
}

func TestAdjustConfidence(t *testing.T) {
	if got := AdjustConfidence(80, core.Overrides{}); got != 80 {
		t.Errorf("no overrides: confidence = %d, want 80", got)
	}

	arv := core.Dollars(300000)
	if got := AdjustConfidence(80, core.Overrides{ARV: &arv}); got != 70 {
		t.Errorf("with override: confidence = %d, want 70", got)
	}

	if got := AdjustConfidence(5, core.Overrides{ARV: &arv}); got != 0 {
		t.Errorf("confidence should clamp at 0, got %d", got)
	}
}

func TestRatioPct(t *testing.T) {
	if got := RatioPct(core.Dollars(15), core.Dollars(100)); got != 15 {
		t.Errorf("RatioPct = %v, want 15", got)
	}
	if got := RatioPct(core.Dollars(15), 0); got != 0 {
		t.Errorf("zero denominator should give 0, got %v", got)
	}
}
