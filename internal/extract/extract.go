// Package extract runs volumes through the aggregator and into the configured
// outputs.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"lexfeatures/internal/db"
	"lexfeatures/internal/featurecsv"
	"lexfeatures/internal/manifest"
	"lexfeatures/internal/normalize"
	"lexfeatures/internal/pipeline"
	"lexfeatures/internal/volume"
	"lexfeatures/internal/workspace"
)

// Outputs selects the sinks each volume is written to.
type Outputs struct {
	PerVolume bool
	Overwrite bool
	SharedCSV bool
	SQLite    bool
}

type Extractor struct {
	Normalizer *normalize.Normalizer
	Options    volume.Options
	Layout     *workspace.Layout
	Outputs    Outputs
	Logger     *charmlog.Logger
}

// Volume aggregates one volume and writes it to every enabled output.
func (e *Extractor) Volume(entry manifest.Entry) (*volume.Aggregate, error) {
	agg, err := volume.Build(entry.ID, entry.Path, e.Normalizer, e.Options)
	if err != nil {
		return nil, err
	}

	if e.Outputs.PerVolume {
		if err := featurecsv.WriteNew(e.Layout.VolumePath(agg.ID), agg, e.Outputs.Overwrite); err != nil {
			return nil, err
		}
	}
	if e.Outputs.SharedCSV {
		if err := featurecsv.Append(e.Layout.SharedCSV, agg); err != nil {
			return nil, err
		}
	}
	if e.Outputs.SQLite {
		if err := db.PersistVolume(e.Layout.DBPath, agg); err != nil {
			return nil, fmt.Errorf("persist volume: %w", err)
		}
	}

	e.Logger.Debug("volume written",
		"id", agg.ID,
		"pages", agg.NumPages,
		"tokens", agg.TotalTokens,
		"typetoken", agg.TypeToken,
	)
	return agg, nil
}

// Batch processes every manifest entry with the given number of workers and
// returns a run report. Failed volumes are logged and recorded; the returned
// error is non-nil only when the run could not start.
func (e *Extractor) Batch(ctx context.Context, manifestPath string, entries []manifest.Entry, workers int) (workspace.Report, error) {
	report := workspace.Report{
		RunID:     uuid.NewString(),
		Manifest:  manifestPath,
		StartedAt: time.Now().UTC(),
		Volumes:   len(entries),
	}
	if e.Outputs.SharedCSV {
		if err := featurecsv.WriteSharedHeader(e.Layout.SharedCSV); err != nil {
			return report, err
		}
	}

	logger := e.Logger.With("run", report.RunID)
	logger.Info("batch started", "volumes", len(entries), "workers", workers)

	var written, tokens atomic.Int64
	failures := pipeline.ProcessVolumes(ctx, entries, workers, func(_ context.Context, entry manifest.Entry) error {
		agg, err := e.Volume(entry)
		if err != nil {
			return err
		}
		written.Add(1)
		tokens.Add(int64(agg.TotalTokens))
		return nil
	})

	for _, f := range failures {
		if errors.Is(f, context.Canceled) {
			logger.Warn("volume skipped", "id", f.ID, "err", f.Err)
		} else {
			logger.Error("volume failed", "id", f.ID, "err", f.Err)
		}
		report.Failures = append(report.Failures, workspace.Failure{ID: f.ID, Error: f.Err.Error()})
	}
	report.Written = int(written.Load())
	report.TotalTokens = int(tokens.Load())
	report.FinishedAt = time.Now().UTC()

	if err := workspace.SaveReport(e.Layout.ReportPath, report); err != nil {
		return report, err
	}
	logger.Info("batch finished",
		"written", report.Written,
		"failed", len(report.Failures),
		"elapsed", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)
	return report, nil
}
