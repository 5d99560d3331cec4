package report

import (
	"context"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Store defines the interface for analysis report persistence.
type Store interface {
	// Save persists a report and assigns an ID. The assigned ID is
	// returned and stamped on the stored copy.
	Save(ctx context.Context, r core.AnalysisReport) (string, error)

	// GetByID retrieves a report by its ID.
	GetByID(ctx context.Context, id string) (*core.AnalysisReport, error)

	// List retrieves reports matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]core.AnalysisReport, error)

	// Count returns the number of reports matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter defines criteria for listing reports.
type ListFilter struct {
	City        string
	State       string
	Recommended core.StrategyID
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}
