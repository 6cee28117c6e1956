package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/schedule"
	"atelier/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storeFile  string
	icsSources []string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "A terminal planning board for artisan businesses",
	Long: `Atelier is a terminal calendar for independent tradespeople: it shows
interventions on a month or week grid, lets you pick them up and move
them to a new slot, and keeps a detail panel in sync with the selected
day.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&storeFile, "store", "s", "", "Intervention store file to use")
	rootCmd.PersistentFlags().StringSliceVarP(&icsSources, "ics", "i", []string{}, "ICS calendar source(s) to overlay (can be repeated)")
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if storeFile != "" {
		cfg.StoreFile = storeFile
	}
	if len(icsSources) > 0 {
		cfg.ICSSources = icsSources
	}
}

func newLogger() *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
		return zap.NewNop()
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// buildSource assembles the store plus any ICS overlays.
func buildSource(log *zap.Logger) (schedule.Source, *schedule.Store, error) {
	store := schedule.NewStore(cfg.StoreFile, log)
	if err := store.Load(); err != nil {
		return nil, nil, err
	}

	if len(cfg.ICSSources) == 0 {
		return store, store, nil
	}

	sources := []schedule.Source{store}
	for _, loc := range cfg.ICSSources {
		sources = append(sources, schedule.NewICSSource(loc))
	}
	return schedule.NewCompositeSource(sources...), store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	source, store, err := buildSource(log)
	if err != nil {
		return err
	}
	defer source.StopWatching()

	prefsPath := filepath.Join(filepath.Dir(cfg.StoreFile), "widget.yaml")
	model := ui.NewModel(cfg, source, store, config.FilePrefsHooks(prefsPath), log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
