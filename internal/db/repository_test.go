package db

import (
	"path/filepath"
	"testing"

	"lexfeatures/internal/volume"
)

func TestPersistVolume(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "features.db")
	agg := &volume.Aggregate{
		ID:             "mdp.1",
		NumPages:       2,
		TotalCounts:    volume.Counts{"the": 3, "sea": 1},
		TotalTokens:    4,
		BodyTokens:     4,
		LineCount:      2,
		TypeToken:      0.3,
		SentenceLength: 2,
		LineLength:     2,
	}

	if err := PersistVolume(dbPath, agg); err != nil {
		t.Fatalf("persist volume: %v", err)
	}
	// A second run replaces rather than duplicates.
	if err := PersistVolume(dbPath, agg); err != nil {
		t.Fatalf("persist volume again: %v", err)
	}

	volumes, err := CountRows(dbPath, "volumes")
	if err != nil {
		t.Fatalf("count volumes: %v", err)
	}
	if volumes != 1 {
		t.Fatalf("expected 1 volume, got %d", volumes)
	}

	features, err := CountRows(dbPath, "features")
	if err != nil {
		t.Fatalf("count features: %v", err)
	}
	if features != 5 {
		t.Fatalf("expected 5 features, got %d", features)
	}

	loaded, err := LoadFeatures(dbPath, "mdp.1")
	if err != nil {
		t.Fatalf("load features: %v", err)
	}
	if loaded["the"] != 0.75 || loaded[volume.TypeTokenFeature] != 0.3 {
		t.Fatalf("unexpected stored features %v", loaded)
	}

	list, err := ListVolumes(dbPath)
	if err != nil {
		t.Fatalf("list volumes: %v", err)
	}
	if len(list) != 1 || list[0].ID != "mdp.1" || list[0].TotalTokens != 4 || list[0].Pages != 2 {
		t.Fatalf("unexpected volume list %+v", list)
	}
}
