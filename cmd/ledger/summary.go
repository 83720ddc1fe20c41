package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"platerental/ledger"
	"platerental/models"
	"platerental/utils"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute a bill summary for a client and period",
	Example: `  ledger summary --client-id 7 --from 2024-01-01 --to 2024-01-31 --daily-rent 2.5
  ledger summary --client-id 7 --from 2024-01-01 --to 2024-01-31 --daily-rent 2.5 --payment 500 --extra 150`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().Int64("client-id", 0, "Client id (required)")
	summaryCmd.Flags().String("from", "", "Period start (format: YYYY-MM-DD)")
	summaryCmd.Flags().String("to", "", "Period end, inclusive (format: YYYY-MM-DD)")
	summaryCmd.Flags().String("daily-rent", "0", "Rent per piece per day")
	summaryCmd.Flags().StringSlice("extra", nil, "Extra cost amount, repeatable")
	summaryCmd.Flags().StringSlice("discount", nil, "Discount amount, repeatable")
	summaryCmd.Flags().StringSlice("payment", nil, "Payment amount, repeatable")
	_ = summaryCmd.MarkFlagRequired("client-id")
	_ = summaryCmd.MarkFlagRequired("from")
	_ = summaryCmd.MarkFlagRequired("to")
}

func runSummary(cmd *cobra.Command, args []string) error {
	clientID, _ := cmd.Flags().GetInt64("client-id")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	rent, _ := cmd.Flags().GetString("daily-rent")
	extras, _ := cmd.Flags().GetStringSlice("extra")
	discounts, _ := cmd.Flags().GetStringSlice("discount")
	payments, _ := cmd.Flags().GetStringSlice("payment")

	cutoff, err := parseCutoff(to)
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
	bc := ledger.BillingContext{
		FromDate:  from,
		ToDate:    to,
		DailyRent: ledger.ParseAmount(rent),
		Pieces:    ledger.NewAccumulator(rep).ComputeBalance(txs, cutoff).Pieces(),
	}
	for _, a := range extras {
		bc.ExtraCosts = append(bc.ExtraCosts, models.ExtraCost{Total: ledger.ParseAmount(a)})
	}
	for _, a := range discounts {
		bc.Discounts = append(bc.Discounts, models.Discount{Total: ledger.ParseAmount(a)})
	}
	for _, a := range payments {
		bc.Payments = append(bc.Payments, models.Payment{Amount: ledger.ParseAmount(a)})
	}

	writeSummary(cmd.OutOrStdout(), bc, ledger.NewCalculator(rep).GetBillSummary(bc))
	return rep.check(cmd)
}

func writeSummary(w io.Writer, bc ledger.BillingContext, s ledger.BillSummary) {
	fmt.Fprintf(w, "Period        %s to %s (%d days)\n", bc.FromDate, bc.ToDate, s.Days)
	fmt.Fprintf(w, "Pieces        %v\n", bc.Pieces)
	fmt.Fprintf(w, "Daily rent    %s\n", bc.DailyRent.StringFixed(2))
	fmt.Fprintf(w, "Rent          %s\n", s.TotalRent.StringFixed(2))
	fmt.Fprintf(w, "Extra costs   %s\n", s.TotalExtraCosts.StringFixed(2))
	fmt.Fprintf(w, "Discounts     %s\n", s.TotalDiscounts.StringFixed(2))
	fmt.Fprintf(w, "Grand total   %s\n", s.GrandTotal.StringFixed(2))
	fmt.Fprintf(w, "Payments      %s\n", s.TotalPayments.StringFixed(2))
	fmt.Fprintf(w, "Due           %s\n", s.DuePayment.StringFixed(2))
	fmt.Fprintf(w, "              %s\n", utils.AmountInWords(s.DuePayment))
}
