package cmd

import (
	"fmt"

	"student-etl/core/config"
	"student-etl/core/database"
	"student-etl/core/logger"
	"student-etl/feature/etl"
	"student-etl/feature/etl/models"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pipeline runs",
	Long:  `Lists the most recent monitoring rows, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		svc := etl.NewService(db, nil, "", cfg.Pipeline, logg)
		entries, err := svc.History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to load run history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Printf("%-5s %-20s %-6s %6s %6s %6s %6s %7s  %s\n",
			"ID", "RUN TS", "STATUS", "READ", "VALID", "DISC", "MAIL", "AVG", "MESSAGE")
		for _, e := range entries {
			statusColor := "\033[32m" // Green
			if e.Status == models.StatusFail {
				statusColor = "\033[31m" // Red
			}

			avg := "n/a"
			if e.AverageScore != nil {
				avg = fmt.Sprintf("%.2f", *e.AverageScore)
			}

			fmt.Printf("%-5d %-20s %s%-6s\033[0m %6d %6d %6d %6d %7s  %s\n",
				e.ID,
				e.RunTS.Format("2006-01-02 15:04:05"),
				statusColor, e.Status,
				e.RecordsRead, e.RecordsValid, e.RecordsDiscarded, e.EmailsGenerated,
				avg,
				e.Message,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Maximum number of runs to display")
	RootCmd.AddCommand(historyCmd)
}
