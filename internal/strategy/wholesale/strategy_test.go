package wholesale

import (
	"strings"
	"testing"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func testInputs() strategy.Inputs {
	return strategy.Inputs{
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

func TestEvaluate(t *testing.T) {
	res, err := New().Evaluate(testInputs())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// ARV 1800 * 150 * 0.938 = 253260; rehab itemized medium = 53000.
	if res.ARV != core.Dollars(253260) {
		t.Errorf("ARV = %s, want 253260.00", res.ARV)
	}
	if res.RehabCost != core.Dollars(53000) {
		t.Errorf("RehabCost = %s, want 53000.00", res.RehabCost)
	}

	// 253260 * 0.70 - 53000 = 124282
	if res.MaxOffer != core.Dollars(124282) {
		t.Errorf("MaxOffer = %s, want 124282.00", res.MaxOffer)
	}
	if res.TargetPrice != core.Dollars(142924) {
		t.Errorf("TargetPrice = %s, want 142924.00", res.TargetPrice)
	}
	if res.Profit != core.Dollars(18642) {
		t.Errorf("Profit = %s, want 18642.00", res.Profit)
	}
	if res.ROI < 14.9 || res.ROI > 15.1 {
		t.Errorf("ROI = %v, want ~15", res.ROI)
	}
	if res.Confidence != 80 {
		t.Errorf("Confidence = %d, want 80", res.Confidence)
	}
	if res.HoldingPeriodDays != 30 {
		t.Errorf("HoldingPeriodDays = %d, want 30", res.HoldingPeriodDays)
	}
}

// The 70% rule must hold to the cent, and the fee relations follow.
func TestEvaluate_Invariants(t *testing.T) {
	cases := []struct {
		name      string
		sqft      int
		condition core.Condition
		psf       float64
	}{
		{"small fair", 900, core.ConditionFair, 150},
		{"large good", 3200, core.ConditionGood, 180},
		{"poor cheap market", 1500, core.ConditionPoor, 80},
		{"needs rehab", 1800, core.ConditionNeedsRehab, 150},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := testInputs()
			in.Facts.SquareFeet = tc.sqft
			in.Facts.Condition = tc.condition
			in.Market.MedianPricePerSqFt = core.Dollars(tc.psf)

			res, err := New().Evaluate(in)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}

			want := (res.ARV.MulRate(0.70) - res.RehabCost).ClampZero().RoundDollar()
			if diff := res.MaxOffer - want; diff > core.Dollars(1) || diff < core.Dollars(-1) {
				t.Errorf("MaxOffer = %s, want %s", res.MaxOffer, want)
			}
			if res.TargetPrice < res.MaxOffer {
				t.Errorf("TargetPrice %s < MaxOffer %s", res.TargetPrice, res.MaxOffer)
			}
			if res.Profit != res.TargetPrice-res.MaxOffer {
				t.Errorf("Profit %s != TargetPrice - MaxOffer", res.Profit)
			}
			if res.MaxOffer.IsNegative() {
				t.Errorf("MaxOffer went negative: %s", res.MaxOffer)
			}
		})
	}
}

func TestEvaluate_DegenerateOffer(t *testing.T) {
	in := testInputs()
	in.Facts.Condition = core.ConditionNeedsRehab
	// Cheap market: 70% of ARV can't cover heavy rehab.
	in.Market.MedianPricePerSqFt = core.Dollars(40)

	res, err := New().Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if res.MaxOffer != 0 {
		t.Fatalf("MaxOffer = %s, want 0", res.MaxOffer)
	}
	if res.Profit != 0 {
		t.Errorf("Profit = %s, want 0", res.Profit)
	}
	if res.ROI != 0 {
		t.Errorf("ROI = %v, want 0", res.ROI)
	}

	found := false
	for _, n := range res.Notes {
		if n == core.NoteDegenerateNoOffer {
			found = true
		}
	}
	if !found {
		t.Errorf("missing %s note, got %v", core.NoteDegenerateNoOffer, res.Notes)
	}
}

func TestEvaluate_OverrideReducesConfidence(t *testing.T) {
	in := testInputs()
	arv := core.Dollars(300000)
	in.Facts.Overrides.ARV = &arv

	res, err := New().Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if res.ARV != arv {
		t.Errorf("ARV = %s, want override %s", res.ARV, arv)
	}
	if res.Confidence != 70 {
		t.Errorf("Confidence = %d, want 70", res.Confidence)
	}
}

func TestEvaluate_AssignmentFeeNote(t *testing.T) {
	res, err := New().Evaluate(testInputs())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	found := false
	for _, n := range res.Notes {
		if strings.Contains(n, "assignment fee") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected assignment fee note, got %v", res.Notes)
	}
}
