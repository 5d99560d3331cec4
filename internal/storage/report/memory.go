package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

type entry struct {
	report  core.AnalysisReport
	savedAt time.Time
}

// MemoryStore is a bounded in-memory report store. When full, the oldest
// report is evicted.
type MemoryStore struct {
	entries []entry
	maxSize int
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory store with max capacity.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		entries: make([]entry, 0, maxSize),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Save stores a report and assigns it a fresh ID.
func (m *MemoryStore) Save(ctx context.Context, r core.AnalysisReport) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.NewString()
	m.entries = append(m.entries, entry{report: r, savedAt: m.now()})

	if len(m.entries) > m.maxSize {
		m.entries = m.entries[len(m.entries)-m.maxSize:]
	}
	return r.ID, nil
}

// GetByID retrieves a report by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*core.AnalysisReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.entries {
		if m.entries[i].report.ID == id {
			r := m.entries[i].report
			return &r, nil
		}
	}
	return nil, core.ErrReportNotFound
}

// List returns reports matching the filter, newest first.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]core.AnalysisReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []core.AnalysisReport
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.matches(m.entries[i], filter) {
			result = append(result, m.entries[i].report)
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []core.AnalysisReport{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Count returns the count of matching reports.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, e := range m.entries {
		if m.matches(e, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) matches(e entry, filter ListFilter) bool {
	if filter.City != "" && e.report.Facts.City != filter.City {
		return false
	}
	if filter.State != "" && e.report.Facts.State != filter.State {
		return false
	}
	if filter.Recommended != "" && e.report.Recommended != filter.Recommended {
		return false
	}
	if !filter.From.IsZero() && e.savedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && e.savedAt.After(filter.To) {
		return false
	}
	return true
}
