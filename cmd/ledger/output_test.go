package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platerental/ledger"
)

func TestParseCutoff(t *testing.T) {
	got, err := parseCutoff("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = parseCutoff("31/01/2024")
	assert.ErrorContains(t, err, "YYYY-MM-DD")

	today, err := parseCutoff("")
	require.NoError(t, err)
	assert.Equal(t, ledger.CalendarDay(time.Now()), today)
}

func TestWriteBalanceTable(t *testing.T) {
	var bal ledger.Balances
	bal[0] = ledger.SizeBalance{Main: 6, Borrowed: 2, Total: 8}
	earliest := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	writeBalanceTable(&buf, bal, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), &earliest)

	out := buf.String()
	assert.Contains(t, out, "Balance as of 2024-01-31")
	assert.Contains(t, out, "First rental  2024-01-05")
	assert.Regexp(t, `1\s+6\s+2\s+8`, out)
}

func TestWriteSummary(t *testing.T) {
	bc := ledger.BillingContext{FromDate: "2024-01-10", ToDate: "2024-01-15", DailyRent: decimal.NewFromInt(15)}
	bc.Pieces[0] = 8
	s := ledger.NewCalculator(nil).GetBillSummary(bc)

	var buf bytes.Buffer
	writeSummary(&buf, bc, s)

	out := buf.String()
	assert.Contains(t, out, "(6 days)")
	assert.Contains(t, out, "Rent          720.00")
	assert.Contains(t, out, "Seven Hundred Twenty Rupees Only")
}

func TestTeeReporter_Strict(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("strict", true, "")

	rep := newTeeReporter()
	assert.NoError(t, rep.check(cmd))

	rep.Report(ledger.AnomalyMissingDate, map[string]interface{}{"challan_number": "U-9"})
	assert.ErrorContains(t, rep.check(cmd), "1 ledger anomalies")
}
