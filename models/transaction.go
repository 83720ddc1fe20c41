package models

import "time"

// Transaction is the normalized ledger view of one challan.
type Transaction struct {
	Type          ChallanType    `json:"type"`
	ChallanNumber string         `json:"challan_number"`
	ClientID      int64          `json:"client_id"`
	Date          time.Time      `json:"date"`
	Site          string         `json:"site"`
	Phone         string         `json:"phone"`
	Driver        string         `json:"driver,omitempty"`
	Items         ItemQuantities `json:"items"`
	HasItems      bool           `json:"-"`
	GrandTotal    int            `json:"grand_total"`
}

func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}
