package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"linkadmin/internal/models"
)

type RefreshTokenRepository interface {
	// Replace supersedes any existing row for the email and inserts the new
	// token, both inside one transaction so two concurrent logins can never
	// leave two live rows.
	Replace(email, token string, expiresAt time.Time) (*models.RefreshToken, error)
	GetByToken(token string) (*models.RefreshToken, error)
	DeleteByEmail(email string) error
	DeleteByToken(token string) error
}

type refreshTokenRepository struct {
	DB *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) RefreshTokenRepository {
	return &refreshTokenRepository{DB: db}
}

func (r *refreshTokenRepository) Replace(email, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("refresh replace begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM refresh_tokens WHERE user_email=$1`, email); err != nil {
		return nil, fmt.Errorf("refresh replace delete: %w", err)
	}

	const q = `
		INSERT INTO refresh_tokens (user_email, token, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	rt := &models.RefreshToken{UserEmail: email, Token: token, ExpiresAt: expiresAt}
	if err := tx.QueryRow(q, email, token, expiresAt).Scan(&rt.ID, &rt.CreatedAt); err != nil {
		return nil, fmt.Errorf("refresh replace insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("refresh replace commit: %w", err)
	}
	return rt, nil
}

func (r *refreshTokenRepository) GetByToken(token string) (*models.RefreshToken, error) {
	const q = `
		SELECT id, user_email, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`
	rt := &models.RefreshToken{}
	err := r.DB.QueryRow(q, token).Scan(&rt.ID, &rt.UserEmail, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("refresh get by token: %w", err)
	}
	return rt, nil
}

func (r *refreshTokenRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM refresh_tokens WHERE user_email=$1`, email); err != nil {
		return fmt.Errorf("refresh delete by email: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) DeleteByToken(token string) error {
	if _, err := r.DB.Exec(`DELETE FROM refresh_tokens WHERE token=$1`, token); err != nil {
		return fmt.Errorf("refresh delete by token: %w", err)
	}
	return nil
}
