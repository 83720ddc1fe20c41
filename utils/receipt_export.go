package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"platerental/ledger"
	"platerental/models"
)

//go:embed templates/ledger_receipt.html
var templateFS embed.FS

var receiptTmpl = template.Must(template.ParseFS(templateFS, "templates/ledger_receipt.html"))

type ReceiptFormat string

const (
	FormatPDF ReceiptFormat = "pdf"
	FormatPNG ReceiptFormat = "png"
)

func ParseReceiptFormat(s string) (ReceiptFormat, error) {
	switch ReceiptFormat(s) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported receipt format %q", s)
}

func (f ReceiptFormat) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

// BuildReceiptData flattens a client ledger into template data. bill may be
// nil; the due amount is only printed for a bill.
func BuildReceiptData(client *models.Client, rows []ledger.LedgerRow, totals ledger.LedgerTotals, bal ledger.Balances, cutoff time.Time, bill *models.Bill, now time.Time) models.LedgerReceiptData {
	data := models.LedgerReceiptData{
		Client:         client,
		GeneratedOn:    now.Format("02-Jan-2006"),
		Cutoff:         cutoff.Format("02-Jan-2006"),
		Rows:           make([]models.ReceiptRow, 0, len(rows)),
		TotalRented:    totals.TotalRented,
		TotalReturned:  totals.TotalReturned,
		NetOutstanding: totals.NetOutstanding,
	}

	for _, r := range rows {
		date := "-"
		if r.Transaction.HasDate() {
			date = r.Transaction.Date.Format("02-Jan-2006")
		}
		data.Rows = append(data.Rows, models.ReceiptRow{
			Date:          date,
			ChallanNumber: r.Transaction.ChallanNumber,
			Type:          string(r.Transaction.Type),
			Site:          r.Transaction.Site,
			Pieces:        r.Transaction.GrandTotal,
			Balance:       r.Balance,
		})
	}

	for _, s := range models.AllSizes() {
		b := bal.Get(s)
		if b.Total == 0 && b.Main == 0 && b.Borrowed == 0 {
			continue
		}
		data.Sizes = append(data.Sizes, models.ReceiptSize{Size: int(s), Main: b.Main, Borrowed: b.Borrowed, Total: b.Total})
	}

	if bill != nil {
		data.BillNumber = bill.BillNumber
		data.DuePayment = bill.DuePayment.StringFixed(2)
		data.DueWords = AmountInWords(bill.DuePayment)
	}
	return data
}

func RenderReceiptHTML(data models.LedgerReceiptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChromeRenderer prints receipts with headless Chrome.
type ChromeRenderer struct {
	Timeout time.Duration
}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{Timeout: 30 * time.Second}
}

func (c *ChromeRenderer) Render(ctx context.Context, data models.LedgerReceiptData, format ReceiptFormat) ([]byte, error) {
	html, err := RenderReceiptHTML(data)
	if err != nil {
		return nil, err
	}

	tmpHTML := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%d.html", time.Now().UnixNano()))
	if err := os.WriteFile(tmpHTML, html, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	ctx, cancelChrome := chromedp.NewContext(ctx)
	defer cancelChrome()

	var out []byte
	actions := []chromedp.Action{
		chromedp.Navigate("file://" + tmpHTML),
		chromedp.WaitReady("body"),
	}
	switch format {
	case FormatPNG:
		// quality 100 keeps the screenshot as PNG
		actions = append(actions, chromedp.FullScreenshot(&out, 100))
	default:
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}))
	}

	if err := chromedp.Run(ctx, actions...); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return out, nil
}

// SaveReceipt writes data under dir and returns the file name.
func SaveReceipt(dir string, clientID int64, format ReceiptFormat, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	name := fmt.Sprintf("receipt_%d_%d.%s", clientID, now.Unix(), format)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", err
	}
	return name, nil
}
