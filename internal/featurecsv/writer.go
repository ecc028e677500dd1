// Package featurecsv writes volume aggregates as feature tables.
package featurecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gofrs/flock"

	"lexfeatures/internal/volume"
)

var ErrExists = errors.New("output file already exists")

var (
	VolumeHeader = []string{"feature", "count"}
	SharedHeader = []string{"docid", "feature", "value"}
)

// WriteNew writes one volume to its own file. An existing file is left
// untouched unless overwrite is set.
func WriteNew(path string, agg *volume.Aggregate, overwrite bool) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s (pass overwrite to replace it)", ErrExists, path)
		}
		return fmt.Errorf("create feature file: %w", err)
	}
	defer f.Close()

	if err := writeRows(f, VolumeHeader, agg, false); err != nil {
		return err
	}
	return f.Close()
}

// WriteSharedHeader starts a shared feature file, truncating any previous one.
func WriteSharedHeader(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create shared feature file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(SharedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush header: %w", err)
	}
	return f.Close()
}

// Append adds one volume's rows, prefixed by its id, to a shared file. An
// advisory lock next to the file serializes concurrent writers. A new or empty
// file gets the shared header first.
func Append(path string, agg *volume.Aggregate) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock shared feature file: %w", err)
	}
	defer lock.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open shared feature file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat shared feature file: %w", err)
	}
	var header []string
	if info.Size() == 0 {
		header = SharedHeader
	}
	if err := writeRows(f, header, agg, true); err != nil {
		return err
	}
	return f.Close()
}

func writeRows(out io.Writer, header []string, agg *volume.Aggregate, withID bool) error {
	w := csv.NewWriter(out)
	if header != nil {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range agg.Rows() {
		rec := []string{row.Feature, FormatValue(row.Value)}
		if withID {
			rec = append([]string{agg.ID}, rec...)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", row.Feature, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feature rows: %w", err)
	}
	return nil
}

// FormatValue renders the shortest representation that reads back exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
