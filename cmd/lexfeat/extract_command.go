package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lexfeatures/internal/manifest"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "extract <docid> <feature-file>",
		Short: "Aggregate one volume and write its feature table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := ctx.extractor(cmd, outDir)
			if err != nil {
				return err
			}
			if overwrite {
				e.Outputs.Overwrite = true
			}
			agg, err := e.Volume(manifest.Entry{ID: args[0], Path: args[1]})
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Volume", "Pages", "Tokens", "Features", "Type/token"},
				[][]string{{
					agg.ID,
					strconv.Itoa(agg.NumPages),
					humanize.Comma(int64(agg.TotalTokens)),
					strconv.Itoa(len(agg.TotalCounts)),
					strconv.FormatFloat(agg.TypeToken, 'f', 4, 64),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			if e.Outputs.PerVolume {
				fmt.Fprintf(out, "Wrote %s\n", e.Layout.VolumePath(agg.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to output.dir)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing per-volume table")
	return cmd
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var workers int
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "batch <manifest.csv>",
		Short: "Aggregate every volume listed in a docid,filepath manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := manifest.ReadFile(args[0])
			if err != nil {
				return err
			}
			e, err := ctx.extractor(cmd, outDir)
			if err != nil {
				return err
			}
			if overwrite {
				e.Outputs.Overwrite = true
			}
			if workers <= 0 {
				workers = cfg.Batch.Workers
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := e.Batch(runCtx, args[0], entries, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Volumes", "Written", "Failed", "Tokens", "Elapsed"},
				[][]string{{
					report.RunID,
					strconv.Itoa(report.Volumes),
					strconv.Itoa(report.Written),
					strconv.Itoa(len(report.Failures)),
					humanize.Comma(int64(report.TotalTokens)),
					report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String(),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Report written to %s\n", e.Layout.ReportPath)
			if err := runCtx.Err(); err != nil {
				return err
			}
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d of %d volumes failed", len(report.Failures), report.Volumes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to output.dir)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel volumes (defaults to batch.workers)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing per-volume tables")
	return cmd
}
