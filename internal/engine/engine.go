// Package engine wires normalization, strategy evaluation, grading, and
// buyer matching into the single analyze operation.
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/market"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/match"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/normalize"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy/flip"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy/hold"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/strategy/wholesale"
)

// Observer receives analysis outcomes for instrumentation. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveAnalysis(recommended core.StrategyID, grade core.Grade, matches int, dur time.Duration)
}

// Analyzer runs the full underwriting pipeline. It holds no mutable state;
// a single Analyzer is safe for concurrent callers.
type Analyzer struct {
	cfg        config.EngineConfig
	provider   market.Provider
	strategies *strategy.Engine
	matcher    *match.Matcher
	logger     *zap.Logger
	observer   Observer
	now        func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver attaches an instrumentation sink.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) { a.observer = o }
}

// WithClock overrides the time source. Tests use this to pin age math.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New builds an Analyzer with the three built-in strategies registered.
func New(cfg config.EngineConfig, provider market.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:      cfg,
		provider: provider,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.strategies = strategy.NewEngine(a.logger)
	a.strategies.Register(wholesale.New())
	a.strategies.Register(flip.New())
	a.strategies.Register(hold.New())

	a.matcher = match.New(cfg, a.logger)
	return a
}

// Analyze normalizes the input, evaluates every enabled strategy, selects
// the recommended result, and ranks the buyers against it. Validation
// failure rejects the whole input; degraded strategies and market
// fallbacks surface as warnings instead.
func (a *Analyzer) Analyze(in core.PropertyInput, buyers []core.Buyer) (core.AnalysisReport, error) {
	start := a.now()

	facts, err := normalize.Normalize(in, start)
	if err != nil {
		return core.AnalysisReport{}, err
	}

	var warnings []core.Warning

	profile, known := a.provider.Lookup(facts.City, facts.State)
	if !known {
		warnings = append(warnings, core.Warning{
			Code: core.WarnMarketFallbackUsed,
			Message: fmt.Sprintf("no market profile for %s, %s; fallback used",
				facts.City, facts.State),
		})
	}

	if facts.Overrides.Any() {
		warnings = append(warnings, core.Warning{
			Code:    core.WarnOverrideUsed,
			Message: "caller overrides applied; strategy confidence reduced",
		})
	}

	inputs := strategy.Inputs{
		Facts:  facts,
		Market: profile,
		Config: a.cfg,
		Now:    start,
	}

	results, err := a.strategies.EvaluateAll(inputs, a.cfg.EnabledStrategies)
	if err != nil {
		return core.AnalysisReport{}, err
	}

	recommended := pickRecommended(results)

	matches, matchWarnings := a.matcher.Match(facts, recommended, buyers)
	warnings = append(warnings, matchWarnings...)

	report := core.AnalysisReport{
		Facts:       facts,
		Market:      profile,
		Strategies:  results,
		Recommended: recommended.Strategy,
		Matches:     matches,
		Warnings:    warnings,
	}

	elapsed := time.Since(start)
	a.logger.Info("analysis complete",
		zap.String("city", facts.City),
		zap.String("state", facts.State),
		zap.String("recommended", string(recommended.Strategy)),
		zap.String("grade", recommended.Grade.String()),
		zap.Int("matches", len(matches)),
		zap.Duration("elapsed", elapsed),
	)
	if a.observer != nil {
		a.observer.ObserveAnalysis(recommended.Strategy, recommended.Grade, len(matches), elapsed)
	}

	return report, nil
}

// pickRecommended selects by grade, then by larger absolute profit, then
// by strategy precedence. Results arrive already in precedence order, so
// strict comparisons keep the earlier strategy on a full tie.
func pickRecommended(results []core.StrategyResult) core.StrategyResult {
	best := results[0]
	for _, r := range results[1:] {
		switch {
		case r.Grade > best.Grade:
			best = r
		case r.Grade == best.Grade && absMoney(r.Profit) > absMoney(best.Profit):
			best = r
		}
	}
	return best
}

func absMoney(m core.Money) core.Money {
	if m < 0 {
		return -m
	}
	return m
}
