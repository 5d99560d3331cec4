package buyer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buyers.json")
	data := `[
  {"id": "buyer-1", "display_name": "First", "target_states": ["TX"], "price_ceiling": 150000},
  {"id": "buyer-2", "display_name": "Second", "verified": true, "rating": 4.2}
]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	buyers, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
	if len(buyers) != 2 {
		t.Fatalf("expected 2 buyers, got %d", len(buyers))
	}
	if buyers[0].PriceCeiling.Float() != 150000 {
		t.Errorf("PriceCeiling = %s, want 150000.00", buyers[0].PriceCeiling)
	}
	if buyers[1].Rating == nil || *buyers[1].Rating != 4.2 {
		t.Errorf("Rating = %v, want 4.2", buyers[1].Rating)
	}

	s := NewMemoryStore()
	if err := Seed(context.Background(), s, buyers); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n, _ := s.Count(context.Background(), ListFilter{}); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestLoadSeedFile_Missing(t *testing.T) {
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
