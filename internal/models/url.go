package models

import "time"

type Url struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	OriginalUrl string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
