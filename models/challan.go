package models

import "time"

type ChallanType string

const (
	Udhar ChallanType = "udhar" // rental, plates go out to the client
	Jama  ChallanType = "jama"  // return, plates come back
)

func (t ChallanType) Valid() bool {
	return t == Udhar || t == Jama
}

// Challan is a challan header as stored. Site and Phone override the
// client defaults when set.
type Challan struct {
	ID            int64       `json:"id" bson:"_id,omitempty" db:"id"`
	ClientID      int64       `json:"client_id" bson:"client_id" db:"client_id"`
	Type          ChallanType `json:"type" bson:"type" db:"type"`
	ChallanNumber string      `json:"challan_number" bson:"challan_number" db:"challan_number"`
	Date          *time.Time  `json:"date,omitempty" bson:"date,omitempty" db:"date"`
	Site          *string     `json:"site,omitempty" bson:"site,omitempty" db:"site"`
	Phone         *string     `json:"phone,omitempty" bson:"phone,omitempty" db:"phone"`
	Driver        *string     `json:"driver,omitempty" bson:"driver,omitempty" db:"driver"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at" db:"created_at"`
}

// ChallanRecord is a header with its item row. Items is nil when the
// item row is missing in storage.
type ChallanRecord struct {
	Challan `bson:",inline"`
	Items   *ItemQuantities `json:"items,omitempty" bson:"items,omitempty"`
}
