package repositories

import (
	"database/sql"
	"fmt"

	"linkadmin/internal/models"
)

type UrlFilter struct {
	UserID    int64
	ShortCode string
	SortBy    string
	Order     string
	Limit     int
	Offset    int
}

type UrlRepository interface {
	Create(url *models.Url) error
	GetByID(id int64) (*models.Url, error)
	GetByShortCode(code string) (*models.Url, error)
	Update(url *models.Url) error
	Delete(id int64) error
	Filter(f UrlFilter) ([]models.Url, error)
	CountByUser(userID int64) (int, error)
}

type urlRepository struct {
	db *sql.DB
}

func NewUrlRepository(db *sql.DB) UrlRepository {
	return &urlRepository{db: db}
}

func (r *urlRepository) Create(url *models.Url) error {
	const q = `
		INSERT INTO urls (user_id, original_url, short_code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(q, url.UserID, url.OriginalUrl, url.ShortCode, url.Description).
		Scan(&url.ID, &url.CreatedAt, &url.UpdatedAt)
	if err != nil {
		return fmt.Errorf("url create: %w", err)
	}
	return nil
}

func (r *urlRepository) GetByID(id int64) (*models.Url, error) {
	return r.getOne(`WHERE id=$1`, id)
}

func (r *urlRepository) GetByShortCode(code string) (*models.Url, error) {
	return r.getOne(`WHERE short_code=$1`, code)
}

func (r *urlRepository) getOne(where string, arg any) (*models.Url, error) {
	q := `SELECT id, user_id, original_url, short_code, COALESCE(description,''), created_at, updated_at FROM urls ` + where
	u := &models.Url{}
	err := r.db.QueryRow(q, arg).Scan(&u.ID, &u.UserID, &u.OriginalUrl, &u.ShortCode, &u.Description, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("url get: %w", err)
	}
	return u, nil
}

func (r *urlRepository) Update(url *models.Url) error {
	const q = `
		UPDATE urls
		SET original_url=$1, short_code=$2, description=$3, updated_at=NOW()
		WHERE id=$4
	`
	if _, err := r.db.Exec(q, url.OriginalUrl, url.ShortCode, url.Description, url.ID); err != nil {
		return fmt.Errorf("url update: %w", err)
	}
	return nil
}

func (r *urlRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM urls WHERE id=$1`, id); err != nil {
		return fmt.Errorf("url delete: %w", err)
	}
	return nil
}

func (r *urlRepository) Filter(f UrlFilter) ([]models.Url, error) {
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowed := map[string]bool{"created_at": true, "updated_at": true, "short_code": true}
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	order := f.Order
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	query := `SELECT id, user_id, original_url, short_code, COALESCE(description,''), created_at, updated_at FROM urls WHERE 1=1`
	args := []interface{}{}
	i := 1
	if f.UserID != 0 {
		query += fmt.Sprintf(" AND user_id=$%d", i)
		args = append(args, f.UserID)
		i++
	}
	if f.ShortCode != "" {
		query += fmt.Sprintf(" AND short_code=$%d", i)
		args = append(args, f.ShortCode)
		i++
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("url filter: %w", err)
	}
	defer rows.Close()

	var urls []models.Url
	for rows.Next() {
		var u models.Url
		if err := rows.Scan(&u.ID, &u.UserID, &u.OriginalUrl, &u.ShortCode, &u.Description, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("url filter scan: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (r *urlRepository) CountByUser(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM urls WHERE user_id=$1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("url count: %w", err)
	}
	return count, nil
}
