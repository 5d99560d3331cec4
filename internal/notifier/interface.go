// Package notifier defines the deal alert notification interface.
package notifier

import (
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Config holds notifier configuration
type Config struct {
	Type   string         `mapstructure:"type"`
	Params map[string]any `mapstructure:"params"`
}

// Alert is one deal notification, built from an analysis outcome by the
// alert evaluator.
type Alert struct {
	Rule        string          `json:"rule"`
	Severity    string          `json:"severity"`
	Message     string          `json:"message"`
	ReportID    string          `json:"report_id"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Strategy    core.StrategyID `json:"strategy"`
	Grade       core.Grade      `json:"grade"`
	Profit      core.Money      `json:"profit"`
	ROI         float64         `json:"roi"`
	Matches     int             `json:"matches"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Notifier defines the interface for deal alert delivery
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Init initializes the notifier with configuration
	Init(cfg Config) error

	// Send sends a single deal alert
	Send(alert Alert) error

	// SendBatch sends multiple deal alerts
	SendBatch(alerts []Alert) error
}
