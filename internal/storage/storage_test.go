package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPerftResults(t *testing.T) {
	s := openMemory(t)

	t.Run("Missing", func(t *testing.T) {
		_, err := s.LoadPerft(startFEN, 3)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveLoad", func(t *testing.T) {
		in := &PerftResult{
			FEN:     startFEN,
			Depth:   2,
			Nodes:   400,
			Divide:  []DivideRecord{{Move: "e2e4", Nodes: 20}},
			Elapsed: 3 * time.Millisecond,
		}
		if err := s.SavePerft(in); err != nil {
			t.Fatalf("SavePerft failed: %v", err)
		}
		if in.RecordedAt.IsZero() {
			t.Error("RecordedAt was not set")
		}

		out, err := s.LoadPerft(startFEN, 2)
		if err != nil {
			t.Fatalf("LoadPerft failed: %v", err)
		}
		if out.Nodes != 400 || out.Depth != 2 || out.FEN != startFEN {
			t.Errorf("Loaded %+v", out)
		}
		if len(out.Divide) != 1 || out.Divide[0].Move != "e2e4" {
			t.Errorf("Divide = %+v", out.Divide)
		}
	})

	t.Run("List", func(t *testing.T) {
		for _, r := range []*PerftResult{
			{FEN: startFEN, Depth: 10, Nodes: 69352859712417},
			{FEN: startFEN, Depth: 1, Nodes: 20},
			{FEN: "8/8/8/8/8/8/8/R7 w - - 0 1", Depth: 1, Nodes: 14},
		} {
			if err := s.SavePerft(r); err != nil {
				t.Fatalf("SavePerft failed: %v", err)
			}
		}

		results, err := s.ListPerft(startFEN)
		if err != nil {
			t.Fatalf("ListPerft failed: %v", err)
		}
		var depths []int
		for _, r := range results {
			depths = append(depths, r.Depth)
		}
		if len(depths) != 3 || depths[0] != 1 || depths[1] != 2 || depths[2] != 10 {
			t.Errorf("Depths = %v, want [1 2 10]", depths)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.DeletePerft(startFEN); err != nil {
			t.Fatalf("DeletePerft failed: %v", err)
		}
		results, err := s.ListPerft(startFEN)
		if err != nil {
			t.Fatalf("ListPerft failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected no results, got %d", len(results))
		}
		if _, err := s.LoadPerft("8/8/8/8/8/8/8/R7 w - - 0 1", 1); err != nil {
			t.Errorf("Other FEN was deleted: %v", err)
		}
	})
}

func TestStorageOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	if err := s.SavePerft(&PerftResult{FEN: startFEN, Depth: 3, Nodes: 8902}); err != nil {
		t.Fatalf("SavePerft failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer s.Close()

	r, err := s.LoadPerft(startFEN, 3)
	if err != nil {
		t.Fatalf("LoadPerft failed: %v", err)
	}
	if r.Nodes != 8902 {
		t.Errorf("Nodes = %d, want 8902", r.Nodes)
	}
}

func TestDataPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != dir {
		t.Errorf("GetDataDir = %s, want %s", dataDir, dir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
