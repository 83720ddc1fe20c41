package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"platerental/config"
	"platerental/ledger"
	"platerental/logger"
	"platerental/repository"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Plate rental ledger tools",
	Long: `ledger runs maintenance and reporting tasks against the configured
store (DB_TYPE, POSTGRES_URL / MONGO_URL, see .env).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		return logger.Setup(cfg.GetLoggerConfig())
	},
}

var appConfig *config.Config

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("strict", false, "Fail when the ledger reports data anomalies")
}

func openStore(ctx context.Context) (*repository.Store, error) {
	return repository.OpenStore(ctx, appConfig)
}

// teeReporter logs anomalies and keeps them for --strict.
type teeReporter struct {
	log *ledger.LogReporter
	rec *ledger.RecordingReporter
}

func newTeeReporter() *teeReporter {
	return &teeReporter{log: ledger.NewLogReporter(), rec: &ledger.RecordingReporter{}}
}

func (t *teeReporter) Report(kind ledger.AnomalyKind, fields map[string]interface{}) {
	t.log.Report(kind, fields)
	t.rec.Report(kind, fields)
}

func (t *teeReporter) check(cmd *cobra.Command) error {
	strict, _ := cmd.Flags().GetBool("strict")
	if n := len(t.rec.Anomalies()); strict && n > 0 {
		return fmt.Errorf("%d ledger anomalies reported", n)
	}
	return nil
}
