package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var agendaDate string

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List a day's interventions and exit",
	Long:  `List all interventions for a day (today by default) in a simple text format and exit.`,
	RunE:  runAgenda,
}

func init() {
	agendaCmd.Flags().StringVarP(&agendaDate, "date", "d", "", "Day to list (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(agendaCmd)
}

func runAgenda(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	day := time.Now()
	if agendaDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", agendaDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", agendaDate, err)
		}
		day = parsed
	}

	source, _, err := buildSource(zap.NewNop())
	if err != nil {
		return err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	interventions, err := source.GetInterventions(start, end)
	if err != nil {
		return fmt.Errorf("error getting interventions: %w", err)
	}

	fmt.Printf("Interventions for %s:\n", day.Format(cfg.DateFormat))
	if len(interventions) == 0 {
		fmt.Println("No interventions found.")
		return nil
	}

	for _, iv := range interventions {
		timeStr := iv.Start.Format(cfg.TimeFormat)
		if iv.End != nil {
			timeStr += "–" + iv.End.Format(cfg.TimeFormat)
		}

		fmt.Printf("  %s - %s [%s]\n", timeStr, iv.Title, iv.Status)
		if iv.Client != nil {
			fmt.Printf("    Client: %s\n", iv.Client.DisplayName())
		}
	}

	return nil
}
