package alert

import (
	"strings"
	"sync"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier"
)

// Evaluator evaluates alert rules against analysis reports and sends
// notifications for the ones that fire.
type Evaluator struct {
	registry *notifier.Registry
	rules    []Rule
	cooldown time.Duration

	// Track last fired time per rule and property for cooldown
	lastFired map[string]time.Time

	// For testing: allow a fixed clock
	now func() time.Time

	mu sync.Mutex
}

// NewEvaluator creates a new alert evaluator.
func NewEvaluator(registry *notifier.Registry, rules []Rule) *Evaluator {
	return &Evaluator{
		registry:  registry,
		rules:     rules,
		cooldown:  5 * time.Minute,
		lastFired: make(map[string]time.Time),
		now:       time.Now,
	}
}

// SetCooldown sets the cooldown duration between alerts for the same
// rule and property.
func (e *Evaluator) SetCooldown(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cooldown = d
}

// Evaluate runs every rule against the report. Fired alerts are
// returned; each is also delivered to all registered notifiers.
func (e *Evaluator) Evaluate(rep core.AnalysisReport) []notifier.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	metrics := Metrics(rep)

	var fired []notifier.Alert
	for _, rule := range e.rules {
		if !rule.Evaluate(metrics) {
			continue
		}

		key := rule.Name + "|" + rep.Facts.Street + "|" + rep.Facts.City + "|" + rep.Facts.State
		if last, ok := e.lastFired[key]; ok && now.Sub(last) < e.cooldown {
			continue
		}

		alert := e.buildAlert(rule, rep, now)
		e.registry.NotifyAll(alert)
		e.lastFired[key] = now
		fired = append(fired, alert)
	}
	return fired
}

func (e *Evaluator) buildAlert(rule Rule, rep core.AnalysisReport, now time.Time) notifier.Alert {
	a := notifier.Alert{
		Rule:        rule.Name,
		Severity:    strings.ToLower(rule.Severity),
		Message:     rule.FormatMessage(),
		ReportID:    rep.ID,
		Address:     rep.Facts.Street,
		City:        rep.Facts.City,
		State:       rep.Facts.State,
		Strategy:    rep.Recommended,
		Matches:     len(rep.Matches),
		GeneratedAt: now,
	}
	for _, res := range rep.Strategies {
		if res.Strategy == rep.Recommended {
			a.Grade = res.Grade
			a.Profit = res.Profit
			a.ROI = res.ROI
		}
	}
	return a
}
