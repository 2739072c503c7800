package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Load the datasets and report record counts",
	Long:  "Loads listings, rental prices and neighborhood boundaries once and prints the generation, record counts and any source that failed to load.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		snap, err := newLoader(cfg).Load(cmd.Context())
		if err != nil {
			return err
		}
		formatSnapshot(os.Stdout, snap)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

func formatSnapshot(out io.Writer, snap *model.Snapshot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "generation\t%s\n", snap.Generation)
	_, _ = fmt.Fprintf(w, "loaded_at\t%s\n", snap.LoadedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "listings\t%d\n", len(snap.Listings))
	_, _ = fmt.Fprintf(w, "rentals\t%d\n", len(snap.Rentals))
	_, _ = fmt.Fprintf(w, "neighborhoods\t%d\n", len(snap.Neighborhoods))
	_, _ = fmt.Fprintf(w, "listing_neighborhoods\t%d\n", len(neighborhood.CountByNeighborhood(snap.Listings)))
	for _, f := range snap.Failures {
		_, _ = fmt.Fprintf(w, "failed\t%s\t%s\t%s\n", f.Kind, f.Location, f.Error)
	}
	_ = w.Flush()
}
