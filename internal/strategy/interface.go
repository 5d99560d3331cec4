package strategy

import (
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Inputs provides data to evaluators. All fields are read-only; an
// evaluator never mutates them.
type Inputs struct {
	Facts  core.PropertyFacts
	Market core.MarketProfile
	Config config.EngineConfig
	Now    time.Time
}

// Evaluator defines the interface for exit-strategy evaluators. Each
// evaluator is independent: adding one never changes another's result.
type Evaluator interface {
	ID() core.StrategyID
	Description() string
	Evaluate(in Inputs) (core.StrategyResult, error)
}
