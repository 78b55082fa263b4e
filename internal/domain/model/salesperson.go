package model

import "time"

// Salesperson holds the subset of a user identity relevant to settlement.
// The referral code is assigned once and never reused for another identity.
type Salesperson struct {
	ID           int64
	UserID       int64
	ReferralCode string
	Suspended    bool
	CreatedAt    time.Time
}
