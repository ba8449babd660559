package cmd

import (
	"fmt"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var centroidsCmd = &cobra.Command{
	Use:   "centroids",
	Short: "Recompute the centroid of every intern with embeddings",
	RunE:  runCentroids,
}

func init() {
	rootCmd.AddCommand(centroidsCmd)
}

func runCentroids(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	ids, err := a.aggregator.InternIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No embeddings found, nothing to do.")
		return nil
	}

	bar := progressbar.NewOptions(len(ids),
		progressbar.OptionSetDescription("Recomputing centroids"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("interns"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	report := a.aggregator.WithProgress(func() { _ = bar.Add(1) }).RecomputeMany(ctx, ids)
	_ = bar.Finish()

	fmt.Printf("\nUpdated: %d, skipped: %d, failed: %d\n", len(report.Updated), len(report.Skipped), len(report.Failed))
	if report.HasFailures() {
		failed := make([]int64, 0, len(report.Failed))
		for id := range report.Failed {
			failed = append(failed, id)
		}
		sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })
		for _, id := range failed {
			fmt.Printf("  intern %d: %v\n", id, report.Failed[id])
		}
		return fmt.Errorf("%d centroids could not be recomputed", len(report.Failed))
	}
	return nil
}
