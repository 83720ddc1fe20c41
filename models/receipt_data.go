package models

// LedgerReceiptData is the template data of a client ledger receipt.
type LedgerReceiptData struct {
	Client      *Client
	GeneratedOn string // formatted date
	Cutoff      string

	Rows           []ReceiptRow
	TotalRented    int
	TotalReturned  int
	NetOutstanding int
	Sizes          []ReceiptSize

	// Set only when the receipt is tied to a bill.
	BillNumber string
	DuePayment string
	DueWords   string
}

type ReceiptRow struct {
	Date          string
	ChallanNumber string
	Type          string
	Site          string
	Pieces        int
	Balance       int
}

type ReceiptSize struct {
	Size     int
	Main     int
	Borrowed int
	Total    int
}
