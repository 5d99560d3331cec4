package buyer

import (
	"context"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Store defines the interface for buyer-list persistence.
type Store interface {
	// Save inserts or replaces a buyer by ID.
	Save(ctx context.Context, b core.Buyer) error

	// GetByID retrieves a buyer by its ID.
	GetByID(ctx context.Context, id string) (*core.Buyer, error)

	// List retrieves buyers matching the filter, ordered by ID.
	List(ctx context.Context, filter ListFilter) ([]core.Buyer, error)

	// Count returns the number of buyers matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Delete removes a buyer. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// ListFilter defines criteria for listing buyers.
type ListFilter struct {
	State        string
	City         string
	PropertyType core.PropertyType
	Verified     *bool
	Limit        int
	Offset       int
}
