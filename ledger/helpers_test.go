package ledger

import (
	"time"

	"platerental/models"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func items(size models.Size, qty, borrowed int) *models.ItemQuantities {
	var q models.ItemQuantities
	q.Set(size, models.SizeQuantity{Qty: qty, Borrowed: borrowed})
	return &q
}

func record(number, date string, q *models.ItemQuantities) models.ChallanRecord {
	ch := models.Challan{ClientID: 7, ChallanNumber: number}
	if date != "" {
		ch.Date = dayPtr(date)
	}
	return models.ChallanRecord{Challan: ch, Items: q}
}
