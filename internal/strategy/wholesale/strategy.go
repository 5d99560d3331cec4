// Package wholesale implements the assignment-fee exit strategy.
package wholesale

import (
	"fmt"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy"
)

const (
	holdingPeriodDays = 30
	baseConfidence    = 80
)

// Wholesale evaluates a property under the 70% rule: the max offer is the
// investor's ceiling, the target price adds the wholesaler's margin, and
// the spread is the assignment fee.
type Wholesale struct{}

func New() *Wholesale { return &Wholesale{} }

func (w *Wholesale) ID() core.StrategyID { return core.StrategyWholesale }

func (w *Wholesale) Description() string {
	return "Wholesale assignment under the 70% rule"
}

func (w *Wholesale) Evaluate(in strategy.Inputs) (core.StrategyResult, error) {
	arv := strategy.EstimateARV(in)
	rehab := strategy.EstimateRehab(in)

	maxOffer := arv.MulRate(in.Config.WholesaleRuleMultiplier) - rehab.Cost
	maxOffer = maxOffer.ClampZero().RoundDollar()

	targetPrice := maxOffer.MulRate(1 + in.Config.WholesaleMargin).RoundDollar()
	profit := targetPrice - maxOffer

	res := core.StrategyResult{
		ARV:               arv,
		RehabCost:         rehab.Cost,
		MaxOffer:          maxOffer,
		TargetPrice:       targetPrice,
		Profit:            profit,
		ROI:               strategy.RatioPct(profit, maxOffer),
		HoldingPeriodDays: holdingPeriodDays,
		Confidence:        strategy.AdjustConfidence(baseConfidence, in.Facts.Overrides),
		Notes:             []string{strategy.BasisNote(rehab)},
	}

	if maxOffer == 0 {
		res.Notes = append(res.Notes, core.NoteDegenerateNoOffer,
			fmt.Sprintf("rehab %s consumes the %v%% ceiling on ARV %s",
				rehab.Cost, in.Config.WholesaleRuleMultiplier*100, arv))
	} else {
		res.Notes = append(res.Notes,
			fmt.Sprintf("assignment fee %s at target price %s", profit, targetPrice))
	}

	return res, nil
}
