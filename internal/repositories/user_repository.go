package repositories

import (
	"database/sql"
	"fmt"

	"linkadmin/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	Save(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByVerificationToken(token string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	List(limit, offset int) ([]*models.User, error)
	Delete(id int64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, username, email, password_hash, first_name, last_name, phone_number,
	COALESCE(address,''), provider,
	is_enabled, is_account_non_expired, is_account_non_locked, is_credentials_non_expired,
	verification_token, verification_code, verification_token_expiry, verification_code_attempts,
	reset_password_token, reset_password_code, reset_password_token_expiry, reset_password_attempts,
	created_at, updated_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			username, email, password_hash, first_name, last_name, phone_number, address, provider,
			is_enabled, is_account_non_expired, is_account_non_locked, is_credentials_non_expired,
			verification_token, verification_code, verification_token_expiry, verification_code_attempts,
			reset_password_token, reset_password_code, reset_password_token_expiry, reset_password_attempts,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.PhoneNumber, user.Address, user.Provider,
		user.Enabled, user.AccountNonExpired, user.AccountNonLocked, user.CredentialsNonExpired,
		user.Verification.Token, user.Verification.Code, user.Verification.ExpiresAt, user.Verification.Attempts,
		user.Reset.Token, user.Reset.Code, user.Reset.ExpiresAt, user.Reset.Attempts,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

// Save writes every mutable column back, challenge fields included. The
// services treat a user value as the unit of persistence, like the original
// entity save.
func (r *userRepository) Save(user *models.User) error {
	const q = `
		UPDATE users SET
			username=$1, email=$2, password_hash=$3, first_name=$4, last_name=$5,
			phone_number=$6, address=$7, provider=$8,
			is_enabled=$9, is_account_non_expired=$10, is_account_non_locked=$11, is_credentials_non_expired=$12,
			verification_token=$13, verification_code=$14, verification_token_expiry=$15, verification_code_attempts=$16,
			reset_password_token=$17, reset_password_code=$18, reset_password_token_expiry=$19, reset_password_attempts=$20,
			updated_at=NOW()
		WHERE id=$21
	`
	_, err := r.DB.Exec(q,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.PhoneNumber, user.Address, user.Provider,
		user.Enabled, user.AccountNonExpired, user.AccountNonLocked, user.CredentialsNonExpired,
		user.Verification.Token, user.Verification.Code, user.Verification.ExpiresAt, user.Verification.Attempts,
		user.Reset.Token, user.Reset.Code, user.Reset.ExpiresAt, user.Reset.Attempts,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("user save: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByVerificationToken(token string) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE verification_token=$1`, token)
}

func (r *userRepository) GetByResetToken(token string) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE reset_password_token=$1`, token)
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists by email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	return nil
}

// getOne returns (nil, nil) on a lookup miss; not-found policy belongs to the
// services.
func (r *userRepository) getOne(q string, arg any) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(q, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		vTok, vCode sql.NullString
		vExp        sql.NullTime
		rTok, rCode sql.NullString
		rExp        sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.PhoneNumber, &u.Address, &u.Provider,
		&u.Enabled, &u.AccountNonExpired, &u.AccountNonLocked, &u.CredentialsNonExpired,
		&vTok, &vCode, &vExp, &u.Verification.Attempts,
		&rTok, &rCode, &rExp, &u.Reset.Attempts,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vTok.Valid {
		u.Verification.Token = &vTok.String
	}
	if vCode.Valid {
		u.Verification.Code = &vCode.String
	}
	if vExp.Valid {
		u.Verification.ExpiresAt = &vExp.Time
	}
	if rTok.Valid {
		u.Reset.Token = &rTok.String
	}
	if rCode.Valid {
		u.Reset.Code = &rCode.String
	}
	if rExp.Valid {
		u.Reset.ExpiresAt = &rExp.Time
	}
	return u, nil
}
