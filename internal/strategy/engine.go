package strategy

import (
	"sync"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/grade"
	"go.uber.org/zap"
)

// Engine manages and runs strategy evaluators.
type Engine struct {
	mu         sync.RWMutex
	evaluators map[core.StrategyID]Evaluator
	logger     *zap.Logger
}

// NewEngine creates a new evaluator engine.
func NewEngine(logger ...*zap.Logger) *Engine {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Engine{
		evaluators: make(map[core.StrategyID]Evaluator),
		logger:     l,
	}
}

// Register adds an evaluator to the engine.
func (e *Engine) Register(ev Evaluator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evaluators[ev.ID()] = ev
}

// Get retrieves an evaluator by strategy id.
func (e *Engine) Get(id core.StrategyID) (Evaluator, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ev, ok := e.evaluators[id]
	return ev, ok
}

// EvaluateAll runs every enabled evaluator in precedence order and grades
// each result. Evaluators never observe each other's outputs, so the
// result set is deterministic for fixed inputs.
func (e *Engine) EvaluateAll(in Inputs, enabled []core.StrategyID) ([]core.StrategyResult, error) {
	if len(enabled) == 0 {
		return nil, core.ErrNoStrategies
	}

	enabledSet := make(map[core.StrategyID]struct{}, len(enabled))
	for _, id := range enabled {
		enabledSet[id] = struct{}{}
	}

	var results []core.StrategyResult
	for _, id := range core.StrategyPrecedence {
		if _, ok := enabledSet[id]; !ok {
			continue
		}

		ev, ok := e.Get(id)
		if !ok {
			return nil, core.WrapError(core.ErrStrategyUnknown, nil)
		}

		res, err := ev.Evaluate(in)
		if err != nil {
			return nil, err
		}

		res.Strategy = id
		res.Grade = grade.FromROI(res.ROI)
		results = append(results, res)

		e.logger.Debug("strategy evaluated",
			zap.String("strategy", string(id)),
			zap.String("grade", res.Grade.String()),
			zap.Float64("roi", res.ROI),
		)
	}
	if len(results) == 0 {
		return nil, core.ErrNoStrategies
	}

	return results, nil
}
