package models

import "time"

// RefreshToken is the single live opaque refresh credential for a user,
// keyed by email. Creating a new one supersedes the old row.
type RefreshToken struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
