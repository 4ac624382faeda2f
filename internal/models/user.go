package models

import "time"

// AuthProviderLocal is the only provider this service issues credentials for.
// Federated providers are recorded but never authenticated here.
const AuthProviderLocal = "local"

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address,omitempty"`
	Provider     string `json:"provider"`

	// account lifecycle flags
	Enabled               bool `json:"enabled"`
	AccountNonExpired     bool `json:"-"`
	AccountNonLocked      bool `json:"-"`
	CredentialsNonExpired bool `json:"-"`

	// Verification is live only while the account is pending activation,
	// Reset only while a password reset is pending.
	Verification Challenge `json:"-"`
	Reset        Challenge `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
