package cmd

import (
	"fmt"
	"os"

	"student-etl/core/config"
	"student-etl/core/database"
	"student-etl/core/logger"
	"student-etl/core/storage"
	"student-etl/feature/etl"
	"student-etl/feature/etl/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline run",
	Long: `Reads the configured sources, consolidates them into the hechos table,
writes the flat CSV export and records a monitoring row. Exits non-zero
when the run fails; the failure is recorded in the monitoring table too.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPipeline(cmd)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Database connection required", zap.Error(err))
	}

	// Storage is only needed when run archiving is enabled.
	var client storage.Client
	if cfg.Pipeline.ArchiveEnabled {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Archiving disabled: storage client failed", zap.Error(err))
		} else {
			client = c
		}
	}

	svc := etl.NewService(db, client, cfg.Storage.Bucket, cfg.Pipeline, logg)

	entry, runErr := svc.Execute(cmd.Context())
	if entry == nil {
		logg.Fatal("Run could not start", zap.Error(runErr))
	}

	printRunSummary(entry)

	if runErr != nil {
		os.Exit(1)
	}
}

func printRunSummary(entry *models.MonitorEntry) {
	statusColor := "\033[32m" // Green
	if entry.Status == models.StatusFail {
		statusColor = "\033[31m" // Red
	}
	resetColor := "\033[0m"

	avg := "n/a"
	if entry.AverageScore != nil {
		avg = fmt.Sprintf("%.2f", *entry.AverageScore)
	}

	fmt.Println("\n--- Run Summary ---")
	fmt.Printf("Status:            %s%s%s\n", statusColor, entry.Status, resetColor)
	fmt.Printf("Records Read:      %d\n", entry.RecordsRead)
	fmt.Printf("Records Valid:     %d\n", entry.RecordsValid)
	fmt.Printf("Records Discarded: %d\n", entry.RecordsDiscarded)
	fmt.Printf("Enrolled Students: %d\n", entry.StudentsEnrolled)
	fmt.Printf("Unique Students:   %d\n", entry.UniqueStudents)
	fmt.Printf("Distinct Subjects: %d\n", entry.DistinctSubjects)
	fmt.Printf("Emails Generated:  %d\n", entry.EmailsGenerated)
	fmt.Printf("Average Score:     %s\n", avg)
	fmt.Printf("Duration:          %.2fs\n", entry.DurationSeconds)
	if entry.Message != "" {
		fmt.Printf("Message:           %s\n", entry.Message)
	}
	fmt.Println("-------------------")
}
