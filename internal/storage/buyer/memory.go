package buyer

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// MemoryStore is an in-memory buyer store.
type MemoryStore struct {
	buyers map[string]core.Buyer
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buyers: make(map[string]core.Buyer)}
}

// Save inserts or replaces a buyer.
func (m *MemoryStore) Save(ctx context.Context, b core.Buyer) error {
	if b.ID == "" {
		return core.WrapError(core.ErrStorageFailed, errEmptyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buyers[b.ID] = b
	return nil
}

// GetByID retrieves a buyer by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*core.Buyer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buyers[id]
	if !ok {
		return nil, core.ErrBuyerNotFound
	}
	return &b, nil
}

// List returns buyers matching the filter in ascending ID order.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]core.Buyer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []core.Buyer
	for _, b := range m.buyers {
		if matches(b, filter) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []core.Buyer{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Count returns the count of matching buyers.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, b := range m.buyers {
		if matches(b, filter) {
			count++
		}
	}
	return count, nil
}

// Delete removes a buyer by ID.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buyers, id)
	return nil
}

func matches(b core.Buyer, filter ListFilter) bool {
	if filter.State != "" && !containsFold(b.TargetStates, filter.State) {
		return false
	}
	if filter.City != "" && len(b.TargetCities) > 0 && !containsFold(b.TargetCities, filter.City) {
		return false
	}
	if filter.PropertyType != "" {
		found := false
		for _, t := range b.PropertyTypes {
			if t == filter.PropertyType {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.Verified != nil && b.Verified != *filter.Verified {
		return false
	}
	return true
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}
