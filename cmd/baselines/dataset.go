package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"baselines/internal/corpus"
	"baselines/internal/models"
	"baselines/internal/repository"

	"github.com/spf13/cobra"
)

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <corpus.tsv>",
		Short: "Store a corpus file in the database, replacing the previous dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := corpus.ReadFile(args[0])
			if err != nil {
				return err
			}

			db, err := repository.Open(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewDatasetRepository(db, a.logger)
			if err := repo.ReplaceRecords(cmd.Context(), records, args[0]); err != nil {
				return err
			}

			stats, err := repo.GetDatasetStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d records from %s\n", len(records), args[0])
			return writeStats(out, stats)
		},
	}
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the size and label distribution of the stored dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.Open(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := repository.NewDatasetRepository(db, a.logger).GetDatasetStats(cmd.Context())
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), stats)
		},
	}
}

func (a *app) runsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored evaluation runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.Open(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := repository.NewRunRepository(db, a.logger).ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

func writeStats(out io.Writer, stats *models.DatasetStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total:\t%d\n", stats.Total)
	for _, group := range []struct {
		title  string
		counts map[string]int
	}{
		{"Coarse labels:", stats.ByCoarse},
		{"Fine labels:", stats.ByFine},
	} {
		fmt.Fprintln(w, group.title)
		labels := make([]string, 0, len(group.counts))
		for l := range group.counts {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Fprintf(w, "  %s\t%d\n", l, group.counts[l])
		}
	}
	return w.Flush()
}

func writeRuns(out io.Writer, runs []*models.EvaluationRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs stored")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tBASELINE\tLABELS\tTRAIN\tTEST\tACCURACY\tMACRO F1\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.6f\t%.6f\t%s\n",
			r.RunID, r.Baseline, r.LabelMode, r.TrainSize, r.TestSize,
			r.Accuracy, r.MacroF1, r.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
