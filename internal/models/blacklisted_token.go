package models

import "time"

// BlacklistedToken records an access token revoked before its natural
// expiry. Rows are append-only until the periodic sweep deletes the ones
// whose underlying JWT has expired anyway.
type BlacklistedToken struct {
	ID            int64     `json:"id"`
	Token         string    `json:"-"`
	BlacklistedAt time.Time `json:"blacklisted_at"`
}
