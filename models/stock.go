package models

import "time"

// StockLevel is the owned (main) inventory of one size. Borrowed plates
// are never counted here.
type StockLevel struct {
	Size      Size      `json:"size" bson:"_id" db:"size"`
	Total     int       `json:"total" bson:"total" db:"total"`
	Available int       `json:"available" bson:"available" db:"available"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}
