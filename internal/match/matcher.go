// Package match scores cash buyers against an underwritten deal.
package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Matcher ranks buyers for a property and its winning strategy. Scoring is
// additive per component; each component contributes independently and a
// missing buyer field contributes nothing.
type Matcher struct {
	cfg    config.EngineConfig
	logger *zap.Logger
}

// New creates a buyer matcher.
func New(cfg config.EngineConfig, logger ...*zap.Logger) *Matcher {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Matcher{cfg: cfg, logger: l}
}

// Match scores every buyer against the deal and returns the strong and
// possible tiers, ranked. Buyers with an inverted price range are excluded
// and reported once through the returned warnings. An empty buyer list is
// not an error.
func (m *Matcher) Match(facts core.PropertyFacts, res core.StrategyResult, buyers []core.Buyer) ([]core.MatchResult, []core.Warning) {
	var warnings []core.Warning

	type scored struct {
		result core.MatchResult
		buyer  core.Buyer
	}
	var kept []scored

	for _, b := range buyers {
		if b.PriceCeiling > 0 && b.PriceFloor > b.PriceCeiling {
			warnings = append(warnings, core.Warning{
				Code: core.WarnBuyerInvertedRange,
				Message: fmt.Sprintf("buyer %s excluded: price floor %s above ceiling %s",
					b.ID, b.PriceFloor, b.PriceCeiling),
			})
			continue
		}

		r := m.score(facts, res, b)
		if r.Tier == core.TierWeak {
			continue
		}
		kept = append(kept, scored{result: r, buyer: b})
	}

	// Total order: score, then rating, then track record, then id.
	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.result.Score != b.result.Score {
			return a.result.Score > b.result.Score
		}
		if ra, rb := ratingOf(a.buyer), ratingOf(b.buyer); ra != rb {
			return ra > rb
		}
		if a.buyer.ClosedDeals != b.buyer.ClosedDeals {
			return a.buyer.ClosedDeals > b.buyer.ClosedDeals
		}
		return a.result.BuyerID < b.result.BuyerID
	})

	results := make([]core.MatchResult, 0, len(kept))
	for _, s := range kept {
		results = append(results, s.result)
	}

	m.logger.Debug("buyers matched",
		zap.Int("candidates", len(buyers)),
		zap.Int("matched", len(results)),
	)
	return results, warnings
}

// score applies the component rubric in a fixed order so the reason list
// is deterministic. The fractional total rounds half-to-even into [0, 100].
func (m *Matcher) score(facts core.PropertyFacts, res core.StrategyResult, b core.Buyer) core.MatchResult {
	w := m.cfg.MatchWeights
	var total float64
	var reasons []core.ReasonCode

	if containsType(b.PropertyTypes, facts.PropertyType) {
		total += w.PropertyType
		reasons = append(reasons, core.ReasonPropertyTypeMatch)
	}

	switch priceFit(b, res.TargetPrice, m.cfg.PriceNearTolerance) {
	case priceIn:
		total += w.PriceInRange
		reasons = append(reasons, core.ReasonPriceInRange)
	case priceNear:
		total += w.PriceNear
		reasons = append(reasons, core.ReasonPriceNearRange)
	}

	if containsFold(b.TargetStates, facts.State) {
		total += w.State
		reasons = append(reasons, core.ReasonStateMatch)
	}

	// No city list means the buyer takes anything in their states.
	if len(b.TargetCities) == 0 || containsFold(b.TargetCities, facts.City) {
		total += w.City
		reasons = append(reasons, core.ReasonCityMatch)
	}

	if dealTypeCompatible(m.cfg.StrategyDealTypes[res.Strategy], b.DealTypes) {
		total += w.DealType
		reasons = append(reasons, core.ReasonDealTypeMatch)
	}

	if b.Verified {
		total += w.Verified
		reasons = append(reasons, core.ReasonVerifiedBuyer)
	}
	if b.ProofOfFunds {
		total += w.ProofOfFunds
		reasons = append(reasons, core.ReasonProofOfFunds)
	}

	if rep := reputationPoints(b, w.Reputation); rep > 0 {
		total += rep
		reasons = append(reasons, core.ReasonReputation)
	}

	score := int(math.RoundToEven(total))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return core.MatchResult{
		BuyerID: b.ID,
		Score:   score,
		Reasons: reasons,
		Tier:    m.tier(score),
	}
}

func (m *Matcher) tier(score int) core.MatchTier {
	switch {
	case score >= m.cfg.TierThresholdStrong:
		return core.TierStrong
	case score >= m.cfg.TierThresholdPossible:
		return core.TierPossible
	default:
		return core.TierWeak
	}
}

type priceResult int

const (
	priceOut priceResult = iota
	priceNear
	priceIn
)

// priceFit checks the target price against the buyer's band. A buyer with
// no band at all contributes nothing; a band missing only its ceiling is
// open above the floor.
func priceFit(b core.Buyer, target core.Money, tolerance float64) priceResult {
	if b.PriceFloor == 0 && b.PriceCeiling == 0 {
		return priceOut
	}

	ceiling := b.PriceCeiling
	if ceiling == 0 {
		ceiling = core.Money(math.MaxInt64)
	}

	if target >= b.PriceFloor && target <= ceiling {
		return priceIn
	}

	lower := b.PriceFloor.MulRate(1 - tolerance)
	upper := ceiling
	if ceiling != core.Money(math.MaxInt64) {
		upper = ceiling.MulRate(1 + tolerance)
	}
	if target >= lower && target <= upper {
		return priceNear
	}
	return priceOut
}

func reputationPoints(b core.Buyer, maxPts float64) float64 {
	var raw float64
	if b.Rating != nil {
		raw = *b.Rating
	} else {
		raw = float64(b.ClosedDeals) / 4
	}
	return math.Min(maxPts, raw)
}

func ratingOf(b core.Buyer) float64 {
	if b.Rating == nil {
		return -1
	}
	return *b.Rating
}

func containsType(list []core.PropertyType, want core.PropertyType) bool {
	for _, t := range list {
		if t == want {
			return true
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}

func dealTypeCompatible(strategyTypes, buyerTypes []core.DealType) bool {
	for _, st := range strategyTypes {
		for _, bt := range buyerTypes {
			if st == bt {
				return true
			}
		}
	}
	return false
}
