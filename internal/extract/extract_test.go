package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lexfeatures/internal/db"
	"lexfeatures/internal/featurecsv"
	"lexfeatures/internal/logging"
	"lexfeatures/internal/manifest"
	"lexfeatures/internal/normalize"
	"lexfeatures/internal/volume"
	"lexfeatures/internal/workspace"
)

const fixture = "../features/testdata/vol.json"

func newExtractor(t *testing.T, outputs Outputs) *Extractor {
	t.Helper()
	layout, err := workspace.EnsureAt(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	return &Extractor{
		Normalizer: normalize.New(nil),
		Options:    volume.Options{},
		Layout:     layout,
		Outputs:    outputs,
		Logger:     logging.Discard(),
	}
}

func TestBatchWritesEveryOutput(t *testing.T) {
	e := newExtractor(t, Outputs{PerVolume: true, SharedCSV: true, SQLite: true})
	entries := []manifest.Entry{
		{ID: "mdp.39015012345678", Path: fixture},
		{ID: "mdp.wrong", Path: fixture},
		{ID: "mdp.missing", Path: filepath.Join(t.TempDir(), "nope.json")},
	}

	report, err := e.Batch(context.Background(), "manifest.csv", entries, 2)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if report.Volumes != 3 || report.Written != 1 || len(report.Failures) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.TotalTokens != 12 || report.RunID == "" {
		t.Fatalf("expected token total and run id, got %+v", report)
	}

	if _, err := os.Stat(e.Layout.VolumePath("mdp.39015012345678")); err != nil {
		t.Fatalf("expected per-volume file: %v", err)
	}

	f, err := os.Open(e.Layout.SharedCSV)
	if err != nil {
		t.Fatalf("open shared csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read shared csv: %v", err)
	}
	// header + 7 features + 3 derived rows
	if len(rows) != 11 {
		t.Fatalf("expected 11 shared rows, got %d", len(rows))
	}

	n, err := db.CountRows(e.Layout.DBPath, "volumes")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 stored volume, got %d (%v)", n, err)
	}

	saved, err := workspace.LoadReport(e.Layout.ReportPath)
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if saved.RunID != report.RunID || len(saved.Failures) != 2 {
		t.Fatalf("unexpected saved report %+v", saved)
	}
}

func TestVolumeRefusesExistingOutput(t *testing.T) {
	e := newExtractor(t, Outputs{PerVolume: true})
	entry := manifest.Entry{ID: "mdp.39015012345678", Path: fixture}
	if _, err := e.Volume(entry); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := e.Volume(entry); !errors.Is(err, featurecsv.ErrExists) {
		t.Fatalf("expected ErrExists on second write, got %v", err)
	}
	e.Outputs.Overwrite = true
	if _, err := e.Volume(entry); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestVolumeStartsSharedTableWithHeader(t *testing.T) {
	e := newExtractor(t, Outputs{SharedCSV: true})
	if _, err := e.Volume(manifest.Entry{ID: "mdp.39015012345678", Path: fixture}); err != nil {
		t.Fatalf("volume: %v", err)
	}

	f, err := os.Open(e.Layout.SharedCSV)
	if err != nil {
		t.Fatalf("open shared csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read shared csv: %v", err)
	}
	if len(rows) != 11 || rows[0][0] != "docid" || rows[1][0] != "mdp.39015012345678" {
		t.Fatalf("expected header then 10 volume rows, got %v", rows)
	}
}
