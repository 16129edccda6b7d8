package models

import "time"

// Address is a reusable location saved from a booking request.
type Address struct {
	ID        string    `bson:"id" json:"id" gorm:"primaryKey;size:36"`
	OwnerID   string    `bson:"owner_id" json:"ownerId" gorm:"index;size:64"`
	Label     string    `bson:"label,omitempty" json:"label,omitempty"`
	Line      string    `bson:"line,omitempty" json:"line,omitempty"`
	Latitude  *float64  `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64  `bson:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
