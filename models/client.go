package models

import "time"

type Client struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Site      string    `json:"site" bson:"site" db:"site"`
	Phone     string    `json:"phone" bson:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
