// Package flip implements the fix-and-flip exit strategy.
package flip

import (
	"fmt"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy"
)

const baseConfidence = 75

// Flip evaluates a full renovate-and-resell: purchase plus rehab plus
// carrying and selling costs against the after-repair value.
type Flip struct{}

func New() *Flip { return &Flip{} }

func (f *Flip) ID() core.StrategyID { return core.StrategyFlip }

func (f *Flip) Description() string {
	return "Fix & flip: renovate and resell at ARV"
}

func (f *Flip) Evaluate(in strategy.Inputs) (core.StrategyResult, error) {
	arv := strategy.EstimateARV(in)
	rehab := strategy.EstimateRehab(in)

	purchase := in.Facts.ListPrice
	if in.Facts.Overrides.PurchasePrice != nil {
		purchase = *in.Facts.Overrides.PurchasePrice
	}

	holding := holdingCosts(in, purchase)
	selling := arv.MulRate(in.Config.FlipSellingCostRate).RoundDollar()

	totalCosts := purchase + rehab.Cost + holding + selling
	profit := arv - totalCosts

	invested := purchase + rehab.Cost + holding

	res := core.StrategyResult{
		ARV:               arv,
		RehabCost:         rehab.Cost,
		MaxOffer:          purchase.ClampZero(),
		TargetPrice:       arv,
		Profit:            profit,
		ROI:               strategy.RatioPct(profit, invested),
		HoldingPeriodDays: in.Config.FlipHoldingMonths * 30,
		Confidence:        strategy.AdjustConfidence(baseConfidence, in.Facts.Overrides),
		Notes: []string{
			strategy.BasisNote(rehab),
			fmt.Sprintf("holding %s over %d months, selling costs %s",
				holding, in.Config.FlipHoldingMonths, selling),
		},
	}

	if profit.IsNegative() {
		res.Notes = append(res.Notes, "total costs exceed ARV")
	}

	return res, nil
}

// holdingCosts is months times the monthly carry: utilities, insurance,
// a twelfth of annual property taxes, and maintenance.
func holdingCosts(in strategy.Inputs, purchase core.Money) core.Money {
	annualTaxes := purchase.MulRate(in.Config.PropertyTaxRate)
	monthly := core.Dollars(in.Config.FlipMonthlyUtilities) +
		core.Dollars(in.Config.FlipMonthlyInsurance) +
		annualTaxes.MulRate(1.0/12) +
		core.Dollars(in.Config.FlipMonthlyMaintenance)
	return monthly.MulInt(in.Config.FlipHoldingMonths).RoundDollar()
}
