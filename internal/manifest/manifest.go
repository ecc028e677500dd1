// Package manifest reads the volume list that drives batch runs.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	IDColumn   = "docid"
	PathColumn = "filepath"
)

var ErrMissingColumn = errors.New("manifest column missing")

// Entry is one volume to process.
type Entry struct {
	ID   string
	Path string
}

func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a CSV manifest with a header row. Columns other than docid and
// filepath are ignored, as are rows without a docid.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty manifest", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read manifest header: %w", err)
	}
	idCol, pathCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case IDColumn:
			idCol = i
		case PathColumn:
			pathCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, IDColumn)
	}
	if pathCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, PathColumn)
	}

	var entries []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read manifest line %d: %w", line, err)
		}
		if idCol >= len(rec) || strings.TrimSpace(rec[idCol]) == "" {
			continue
		}
		if pathCol >= len(rec) {
			return nil, fmt.Errorf("manifest line %d: no %s", line, PathColumn)
		}
		entries = append(entries, Entry{
			ID:   strings.TrimSpace(rec[idCol]),
			Path: strings.TrimSpace(rec[pathCol]),
		})
	}
	return entries, nil
}
