package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"platerental/ledger"
	"platerental/models"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print a client's outstanding plates per size",
	Example: `  ledger balance --client-id 7
  ledger balance --client-id 7 --cutoff 2024-01-31 --json`,
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().Int64("client-id", 0, "Client id (required)")
	balanceCmd.Flags().String("cutoff", "", "Cutoff date (format: YYYY-MM-DD, default: today)")
	balanceCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	_ = balanceCmd.MarkFlagRequired("client-id")
}

func parseCutoff(s string) (time.Time, error) {
	if s == "" {
		return ledger.CalendarDay(time.Now()), nil
	}
	t, err := ledger.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date format. Use YYYY-MM-DD: %w", err)
	}
	return t, nil
}

func runBalance(cmd *cobra.Command, args []string) error {
	clientID, _ := cmd.Flags().GetInt64("client-id")
	cutoffStr, _ := cmd.Flags().GetString("cutoff")
	asJSON, _ := cmd.Flags().GetBool("json")

	cutoff, err := parseCutoff(cutoffStr)
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	txs, err := ledger.LoadTransactions(cmd.Context(), store.Challans, clientID)
	if err != nil {
		return err
	}

	rep := newTeeReporter()
	bal := ledger.NewAccumulator(rep).ComputeBalance(txs, cutoff)
	earliest := ledger.EarliestRelevantDate(txs)

	if asJSON {
		out := map[string]interface{}{
			"client_id":    clientID,
			"cutoff":       ledger.FormatDate(cutoff),
			"balances":     bal,
			"total_pieces": bal.TotalPieces(),
		}
		if earliest != nil {
			out["earliest_date"] = ledger.FormatDate(*earliest)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		writeBalanceTable(cmd.OutOrStdout(), bal, cutoff, earliest)
	}
	return rep.check(cmd)
}

func writeBalanceTable(w io.Writer, bal ledger.Balances, cutoff time.Time, earliest *time.Time) {
	fmt.Fprintf(w, "Balance as of %s\n", ledger.FormatDate(cutoff))
	if earliest != nil {
		fmt.Fprintf(w, "First rental  %s\n", ledger.FormatDate(*earliest))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Size\tMain\tBorrowed\tTotal\t")
	for _, s := range models.AllSizes() {
		b := bal.Get(s)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", s, b.Main, b.Borrowed, b.Total)
	}
	fmt.Fprintf(tw, "All\t\t\t%d\t\n", bal.TotalPieces())
	tw.Flush()
}
