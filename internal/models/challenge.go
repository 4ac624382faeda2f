package models

import "time"

// Challenge is the (token, code, expiry, attempts) tuple that gates a
// sensitive account transition. The same shape backs both email verification
// and password reset; an absent token means no challenge is pending.
type Challenge struct {
	Token     *string    `json:"-"`
	Code      *string    `json:"-"`
	ExpiresAt *time.Time `json:"-"`
	Attempts  int        `json:"-"`
}

func (c *Challenge) Issue(token, code string, expiresAt time.Time) {
	c.Token = &token
	c.Code = &code
	c.ExpiresAt = &expiresAt
}

// Clear removes the pending challenge and resets the attempt counter.
func (c *Challenge) Clear() {
	c.Token = nil
	c.Code = nil
	c.ExpiresAt = nil
	c.Attempts = 0
}

func (c *Challenge) Expired(now time.Time) bool {
	return c.ExpiresAt == nil || c.ExpiresAt.Before(now)
}

// CodeMatches compares the stored code; nil code never matches.
func (c *Challenge) CodeMatches(code string) bool {
	return c.Code != nil && *c.Code == code
}
