package models

import "time"

// ProviderTier is the persisted rank derived from completed, paid work.
type ProviderTier struct {
	ProviderID     string    `bson:"provider_id" json:"providerId" gorm:"primaryKey;size:64"`
	Level          int       `bson:"level" json:"level"`
	CompletedCount int64     `bson:"completed_count" json:"completedCount"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
