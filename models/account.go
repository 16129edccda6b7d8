package models

// Account statuses and provider verification states read from the identity store.
const (
	AccountActive        = "active"
	VerificationApproved = "approved"
)

// Account is the read-only identity record of a requester, provider or admin.
type Account struct {
	ID                 string `bson:"id" json:"id" gorm:"primaryKey;size:64"`
	Role               string `bson:"role" json:"role"`
	Status             string `bson:"status" json:"status"`
	Email              string `bson:"email" json:"email"`
	FCMToken           string `bson:"fcm_token,omitempty" json:"-" gorm:"column:fcm_token"`
	VerificationStatus string `bson:"verification_status,omitempty" json:"verificationStatus,omitempty"`
}

// IsActive reports whether the account may take part in bookings.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
