package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

func sampleReport(city, state string, recommended core.StrategyID) core.AnalysisReport {
	return core.AnalysisReport{
		Facts: core.PropertyFacts{
			City:         city,
			State:        state,
			PropertyType: core.PropertySingleFamily,
			SquareFeet:   1800,
		},
		Recommended: recommended,
	}
}

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	id1, err := s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	id2, err := s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("ids must be unique and non-empty: %q, %q", id1, id2)
	}

	got, err := s.GetByID(ctx, id1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != id1 {
		t.Errorf("stored ID = %s, want %s", got.ID, id1)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore(10)
	if _, err := s.GetByID(context.Background(), "nope"); !errors.Is(err, core.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	first, _ := s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	s.Save(ctx, sampleReport("dallas", "TX", core.StrategyFlip))
	s.Save(ctx, sampleReport("austin", "TX", core.StrategyHold))

	if _, err := s.GetByID(ctx, first); !errors.Is(err, core.ErrReportNotFound) {
		t.Errorf("oldest report should be evicted, got %v", err)
	}
	if n, _ := s.Count(ctx, ListFilter{}); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	s.Save(ctx, sampleReport("dallas", "TX", core.StrategyFlip))

	got, err := s.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if got[0].Facts.City != "dallas" || got[1].Facts.City != "houston" {
		t.Errorf("expected newest first, got %s then %s", got[0].Facts.City, got[1].Facts.City)
	}
}

func TestMemoryStore_Filters(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	s.Save(ctx, sampleReport("dallas", "TX", core.StrategyFlip))
	s.Save(ctx, sampleReport("atlanta", "GA", core.StrategyWholesale))

	got, _ := s.List(ctx, ListFilter{State: "TX"})
	if len(got) != 2 {
		t.Errorf("state filter: got %d, want 2", len(got))
	}

	got, _ = s.List(ctx, ListFilter{Recommended: core.StrategyWholesale})
	if len(got) != 2 {
		t.Errorf("strategy filter: got %d, want 2", len(got))
	}

	got, _ = s.List(ctx, ListFilter{City: "atlanta"})
	if len(got) != 1 || got[0].Facts.State != "GA" {
		t.Errorf("city filter: got %v", got)
	}

	got, _ = s.List(ctx, ListFilter{Limit: 1, Offset: 1})
	if len(got) != 1 {
		t.Errorf("pagination: got %d, want 1", len(got))
	}
}

func TestMemoryStore_TimeFilter(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stamp := base
	s.now = func() time.Time { return stamp }

	s.Save(ctx, sampleReport("houston", "TX", core.StrategyWholesale))
	stamp = base.Add(time.Hour)
	s.Save(ctx, sampleReport("dallas", "TX", core.StrategyFlip))

	got, _ := s.List(ctx, ListFilter{From: base.Add(30 * time.Minute)})
	if len(got) != 1 || got[0].Facts.City != "dallas" {
		t.Errorf("From filter: got %v", got)
	}

	got, _ = s.List(ctx, ListFilter{To: base.Add(30 * time.Minute)})
	if len(got) != 1 || got[0].Facts.City != "houston" {
		t.Errorf("To filter: got %v", got)
	}
}
