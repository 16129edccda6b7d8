package models

import "time"

// Service is offered by exactly one provider and carries a weekly template.
type Service struct {
	ID         string    `bson:"id" json:"id" gorm:"primaryKey;size:36"`
	ProviderID string    `bson:"provider_id" json:"providerId" gorm:"index;size:64"`
	Name       string    `bson:"name" json:"name"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// AvailabilityDay is one weekday of a service's recurring template. The open
// window is [OpenTime, CloseTime).
type AvailabilityDay struct {
	ServiceID string       `bson:"service_id" json:"serviceId" gorm:"primaryKey;size:36"`
	Weekday   time.Weekday `bson:"weekday" json:"weekday" gorm:"primaryKey;autoIncrement:false"`
	IsOpen    bool         `bson:"is_open" json:"isOpen"`
	OpenTime  string       `bson:"open_time,omitempty" json:"openTime,omitempty"`
	CloseTime string       `bson:"close_time,omitempty" json:"closeTime,omitempty"`
}

// TableName keeps the SQL table aligned with the Mongo collection name.
func (AvailabilityDay) TableName() string {
	return "availability"
}
