// Package hold implements the buy-and-hold / BRRRR exit strategy.
package hold

import (
	"fmt"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy"
)

const baseConfidence = 70

// Hold evaluates the property as a rental: monthly cash flow after debt
// service and reserves, cap rate against ARV, and cash-on-cash return on
// the capital actually deployed.
type Hold struct{}

func New() *Hold { return &Hold{} }

func (h *Hold) ID() core.StrategyID { return core.StrategyHold }

func (h *Hold) Description() string {
	return "Buy & hold rental with BRRRR-style financing"
}

func (h *Hold) Evaluate(in strategy.Inputs) (core.StrategyResult, error) {
	arv := strategy.EstimateARV(in)
	rehab := strategy.EstimateRehab(in)
	rent := strategy.EstimateRent(in)

	purchase := in.Facts.ListPrice
	if in.Facts.Overrides.PurchasePrice != nil {
		purchase = *in.Facts.Overrides.PurchasePrice
	}

	downPayment := purchase.MulRate(in.Config.HoldDownPaymentRate).RoundDollar()
	loan := purchase - downPayment

	// Interest-only debt service approximation.
	mortgage := loan.MulRate(in.Config.HoldInterestRate / 12)
	monthlyTaxes := purchase.MulRate(in.Config.PropertyTaxRate / 12)
	monthlyInsurance := purchase.MulRate(in.Config.HoldInsuranceRate / 12)
	maintenance := rent.MulRate(in.Config.HoldMaintenanceRate)
	vacancy := rent.MulRate(in.Config.HoldVacancyRate)

	monthlyCashFlow := rent - mortgage - monthlyTaxes - monthlyInsurance - maintenance - vacancy
	annualCashFlow := monthlyCashFlow.MulInt(12).RoundDollar()

	// Cap rate excludes debt service.
	operatingExpenses := (monthlyTaxes + monthlyInsurance + maintenance + vacancy).MulInt(12)
	noi := rent.MulInt(12) - operatingExpenses
	capRate := strategy.RatioPct(noi, arv)

	invested := downPayment + rehab.Cost

	res := core.StrategyResult{
		ARV:               arv,
		RehabCost:         rehab.Cost,
		MaxOffer:          purchase.ClampZero(),
		TargetPrice:       arv,
		Profit:            annualCashFlow,
		ROI:               strategy.RatioPct(annualCashFlow, invested),
		HoldingPeriodDays: 0, // indefinite
		Confidence:        strategy.AdjustConfidence(baseConfidence, in.Facts.Overrides),
		Notes: []string{
			strategy.BasisNote(rehab),
			fmt.Sprintf("monthly cash flow %s on rent %s", monthlyCashFlow, rent),
			fmt.Sprintf("cap rate %.2f%%", capRate),
			"holding period indefinite",
		},
	}

	if monthlyCashFlow.IsNegative() {
		res.Notes = append(res.Notes, "negative monthly cash flow")
	}

	return res, nil
}
