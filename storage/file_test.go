package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crisuscata/nutriscan-ai/models"
	"github.com/crisuscata/nutriscan-ai/storage"
)

func sampleEntries() []models.DailyLogEntry {
	return []models.DailyLogEntry{
		{
			ID:        "b",
			Name:      "Apple",
			Timestamp: 1767225600000,
			Calories:  95,
			Protein:   0,
			Carbs:     25,
			Fat:       0,
			Source:    models.SourceManual,
		},
		{
			ID:        "a",
			Name:      "Grilled chicken bowl",
			Timestamp: 1767222000000,
			Calories:  540,
			Protein:   42,
			Carbs:     48,
			Fat:       18,
			Source:    models.SourceScan,
			ImageURL:  "/thumbs/scan-1.jpg",
		},
	}
}

func TestFileStoreLoadMissingFileReturnsEmptyList(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
	entries, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(entries))
	}
}

func TestFileStoreLoadCorruptFileReturnsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	entries, err := storage.NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list for corrupt file, got %d entries", len(entries))
	}
}

func TestFileStoreRoundTripPreservesOrderAndFields(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
	want := sampleEntries()
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d mismatch:\nwant %+v\ngot  %+v", i, want[i], got[i])
		}
	}
}

func TestFileStoreSaveOverwritesWholesale(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
	if err := store.Save(sampleEntries()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(sampleEntries()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only entry b after overwrite, got %+v", got)
	}
}
