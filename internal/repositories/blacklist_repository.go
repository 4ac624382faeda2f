package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

type BlacklistRepository interface {
	Add(token string, blacklistedAt time.Time) error
	ExistsByToken(token string) (bool, error)
	// DeleteBlacklistedBefore drops rows recorded before the cutoff and
	// reports how many went.
	DeleteBlacklistedBefore(cutoff time.Time) (int64, error)
}

type blacklistRepository struct {
	DB *sql.DB
}

func NewBlacklistRepository(db *sql.DB) BlacklistRepository {
	return &blacklistRepository{DB: db}
}

// Add is idempotent: re-blacklisting the same token is a no-op.
func (r *blacklistRepository) Add(token string, blacklistedAt time.Time) error {
	const q = `
		INSERT INTO blacklisted_tokens (token, blacklisted_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`
	if _, err := r.DB.Exec(q, token, blacklistedAt); err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

func (r *blacklistRepository) ExistsByToken(token string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token=$1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("blacklist exists: %w", err)
	}
	return exists, nil
}

func (r *blacklistRepository) DeleteBlacklistedBefore(cutoff time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM blacklisted_tokens WHERE blacklisted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("blacklist cleanup: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
