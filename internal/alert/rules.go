// Package alert evaluates deal alert rules against analysis outcomes.
package alert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Rule defines a deal alert rule. The expression is evaluated against
// the outcome metrics of the recommended strategy.
type Rule struct {
	Name     string `mapstructure:"name"`
	Expr     string `mapstructure:"expr"`
	Severity string `mapstructure:"severity"`
	Message  string `mapstructure:"message"`
}

// Metrics extracts the rule-visible metrics from a report. Grades map to
// their numeric rank so expressions like "grade >= 4" select A and A+.
func Metrics(rep core.AnalysisReport) map[string]float64 {
	m := map[string]float64{
		"matches": float64(len(rep.Matches)),
	}
	for _, res := range rep.Strategies {
		if res.Strategy != rep.Recommended {
			continue
		}
		m["profit"] = res.Profit.Float()
		m["roi"] = res.ROI
		m["grade"] = float64(res.Grade)
		m["confidence"] = float64(res.Confidence)
		m["max_offer"] = res.MaxOffer.Float()
	}
	return m
}

var exprPattern = regexp.MustCompile(`^(\w+)\s*(>|<|>=|<=|==|!=)\s*(-?[\d.]+)$`)

// Evaluate evaluates the rule expression against metrics.
func (r *Rule) Evaluate(metrics map[string]float64) bool {
	// Simple expression parser: "metric op value"
	// Supports: >, <, >=, <=, ==, !=
	matches := exprPattern.FindStringSubmatch(strings.TrimSpace(r.Expr))
	if len(matches) != 4 {
		return false
	}

	metricName := matches[1]
	op := matches[2]
	threshold, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return false
	}

	value, exists := metrics[metricName]
	if !exists {
		return false
	}

	switch op {
	case ">":
		return value > threshold
	case "<":
		return value < threshold
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	case "==":
		return value == threshold
	case "!=":
		return value != threshold
	default:
		return false
	}
}

// FormatMessage formats the alert message.
func (r *Rule) FormatMessage() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(r.Severity), r.Name, r.Message)
}
