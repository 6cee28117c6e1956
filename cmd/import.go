package cmd

import (
	"fmt"

	"atelier/internal/schedule"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <ics-file-or-url>",
	Short: "Import interventions from an iCalendar feed into the store",
	Long: `Import reads VEVENTs from an iCalendar file or subscription URL and
copies them into the intervention store, skipping IDs that are already
present. Imported interventions become movable like any other.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	store := schedule.NewStore(cfg.StoreFile, zap.NewNop())
	if err := store.Load(); err != nil {
		return err
	}

	incoming, err := schedule.NewICSSource(args[0]).Fetch()
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	existing := make(map[string]struct{})
	for _, iv := range store.All() {
		existing[iv.ID] = struct{}{}
	}

	added := 0
	for _, iv := range incoming {
		if _, dup := existing[iv.ID]; dup {
			continue
		}
		if _, err := store.Add(iv); err != nil {
			return err
		}
		added++
	}

	fmt.Printf("Imported %d intervention(s), %d already present.\n", added, len(incoming)-added)
	return nil
}
