package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Failure records a volume that could not be processed.
type Failure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Report summarizes one batch run.
type Report struct {
	RunID       string    `json:"run_id"`
	Manifest    string    `json:"manifest"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Volumes     int       `json:"volumes"`
	Written     int       `json:"written"`
	TotalTokens int       `json:"total_tokens"`
	Failures    []Failure `json:"failures"`
}

func SaveReport(path string, report Report) error {
	if report.Failures == nil {
		report.Failures = []Failure{}
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func LoadReport(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
