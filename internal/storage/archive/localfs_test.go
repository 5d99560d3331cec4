package archive

import (
	"context"
	"testing"
)

func TestLocalFS_ImplementsBackend(t *testing.T) {
	var _ Backend = (*LocalFS)(nil)
}

func TestLocalFS_WriteRead(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	data := []byte(`{"id":"rep-1"}`)

	if err := fs.Write(ctx, "reports/TX/houston/rep-1.json", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := fs.Read(ctx, "reports/TX/houston/rep-1.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestLocalFS_Exists(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	exists, _ := fs.Exists(ctx, "nope.json")
	if exists {
		t.Error("expected false for missing blob")
	}

	fs.Write(ctx, "exists.json", []byte("{}"))
	exists, _ = fs.Exists(ctx, "exists.json")
	if !exists {
		t.Error("expected true for existing blob")
	}
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	paths, err := fs.List(context.Background(), "reports/ZZ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestLocalFS_Delete(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "gone.json", []byte("{}"))
	if err := fs.Delete(ctx, "gone.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, _ := fs.Exists(ctx, "gone.json")
	if exists {
		t.Error("blob should be deleted")
	}
}
