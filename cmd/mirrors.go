package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/yts"
)

// mirrorsCmd represents the mirrors command
var mirrorsCmd = &cobra.Command{
	Use:   "mirrors",
	Short: "Probe every catalog mirror",
	Long:  `Probe each configured mirror and show which one requests will go to first.`,
	Args:  cobra.NoArgs,
	RunE:  runMirrors,
}

func init() {
	rootCmd.AddCommand(mirrorsCmd)
}

func runMirrors(cmd *cobra.Command, args []string) error {
	catalog, err := newCatalog(cmd.Context(), yts.WithoutProbe())
	if err != nil {
		return err
	}

	results := catalog.Probe(cmd.Context())

	fmt.Printf("Probing %d mirrors...\n", len(results))
	for _, r := range results {
		if r.OK {
			fmt.Printf("  ✓ %s (%s)\n", r.Mirror, r.Latency.Round(time.Millisecond))
			continue
		}
		fmt.Printf("  ✗ %s: %v\n", r.Mirror, r.Err)
	}

	if !catalog.KnownGood() {
		return fmt.Errorf("no mirror answered")
	}
	fmt.Printf("\nPreferred mirror: %s\n", catalog.Preferred())
	return nil
}
