package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lexfeatures/internal/db"
	"lexfeatures/internal/featurecsv"
	"lexfeatures/internal/volume"
	"lexfeatures/internal/workspace"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var volumeID string
	var top int

	cmd := &cobra.Command{
		Use:   "show [feature-table.csv]",
		Short: "Display a feature table or the volumes stored in the SQLite database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rows, err := readFeatureTable(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderFeatureRows(rows, top))
				return nil
			}

			if strings.TrimSpace(dbPath) == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				dbPath = filepath.Join(cfg.Output.Dir, workspace.DBName)
			}
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("feature database: %w", err)
			}

			if volumeID != "" {
				values, err := db.LoadFeatures(dbPath, volumeID)
				if err != nil {
					return err
				}
				if len(values) == 0 {
					return fmt.Errorf("volume %s not found in %s", volumeID, dbPath)
				}
				rows := make([]volume.Row, 0, len(values))
				for feature, value := range values {
					rows = append(rows, volume.Row{Feature: feature, Value: value})
				}
				fmt.Fprintln(out, renderFeatureRows(rows, top))
				return nil
			}

			summaries, err := db.ListVolumes(dbPath)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No volumes stored")
				return nil
			}
			fmt.Fprintln(out, renderVolumeSummaries(summaries))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite feature database (defaults to output.dir/"+workspace.DBName+")")
	cmd.Flags().StringVar(&volumeID, "volume", "", "Show the stored features of one volume")
	cmd.Flags().IntVarP(&top, "top", "n", 25, "Number of features to display, highest first (0 for all)")
	return cmd
}

// readFeatureTable reads a per-volume feature,count table.
func readFeatureTable(path string) ([]volume.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read feature table: %w", err)
	}
	if len(records) == 0 || strings.Join(records[0], ",") != strings.Join(featurecsv.VolumeHeader, ",") {
		return nil, fmt.Errorf("%s: expected header %q", path, strings.Join(featurecsv.VolumeHeader, ","))
	}
	rows := make([]volume.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		value, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		rows = append(rows, volume.Row{Feature: rec[0], Value: value})
	}
	return rows, nil
}

// renderFeatureRows lists the derived scalars first, then the highest
// frequency features.
func renderFeatureRows(rows []volume.Row, top int) string {
	var scalars, freqs []volume.Row
	for _, r := range rows {
		switch r.Feature {
		case volume.SentenceLengthFeature, volume.TypeTokenFeature, volume.LineLengthFeature:
			scalars = append(scalars, r)
		default:
			freqs = append(freqs, r)
		}
	}
	sort.Slice(scalars, func(i, j int) bool { return scalars[i].Feature < scalars[j].Feature })
	sort.SliceStable(freqs, func(i, j int) bool {
		if freqs[i].Value != freqs[j].Value {
			return freqs[i].Value > freqs[j].Value
		}
		return freqs[i].Feature < freqs[j].Feature
	})
	if top > 0 && len(freqs) > top {
		freqs = freqs[:top]
	}

	table := make([][]string, 0, len(scalars)+len(freqs))
	for _, r := range append(scalars, freqs...) {
		table = append(table, []string{r.Feature, featurecsv.FormatValue(r.Value)})
	}
	return renderTable([]string{"Feature", "Value"}, table, []columnAlignment{alignLeft, alignRight})
}

func renderVolumeSummaries(summaries []db.VolumeSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			strconv.Itoa(s.Pages),
			humanize.Comma(int64(s.TotalTokens)),
			strconv.FormatFloat(s.TypeToken, 'f', 4, 64),
			strconv.FormatFloat(s.SentenceLength, 'f', 2, 64),
			strconv.FormatFloat(s.LineLength, 'f', 2, 64),
		})
	}
	return renderTable(
		[]string{"Volume", "Pages", "Tokens", "Type/token", "Sentence length", "Line length"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
