package services

import (
	"sync"
	"time"

	"linkadmin/internal/models"
)

// In-memory repository fakes. They return copies the way the SQL layer
// does, so a mutation only sticks after Save.

type fakeUserRepo struct {
	mu      sync.Mutex
	seq     int64
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	r.byEmail[user.Email] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[user.Email] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) GetByVerificationToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.Verification.Token != nil && *u.Verification.Token == token {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByResetToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.Reset.Token != nil && *u.Reset.Token == token {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return nil
}

type fakeRefreshRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[string]*models.RefreshToken // keyed by token
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{rows: map[string]*models.RefreshToken{}}
}

func (r *fakeRefreshRepo) Replace(email, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, row := range r.rows {
		if row.UserEmail == email {
			delete(r.rows, t)
		}
	}
	r.seq++
	row := &models.RefreshToken{
		ID:        r.seq,
		UserEmail: email,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.rows[token] = row
	c := *row
	return &c, nil
}

func (r *fakeRefreshRepo) GetByToken(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	c := *row
	return &c, nil
}

func (r *fakeRefreshRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, row := range r.rows {
		if row.UserEmail == email {
			delete(r.rows, t)
		}
	}
	return nil
}

func (r *fakeRefreshRepo) DeleteByToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, token)
	return nil
}

func (r *fakeRefreshRepo) countByEmail(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.UserEmail == email {
			n++
		}
	}
	return n
}

// expire backdates a row so expiry paths can be exercised without sleeping.
func (r *fakeRefreshRepo) expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[token]; ok {
		row.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type fakeBlacklistRepo struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{entries: map[string]time.Time{}}
}

func (r *fakeBlacklistRepo) Add(token string, blacklistedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[token]; ok {
		return nil
	}
	r.entries[token] = blacklistedAt
	return nil
}

func (r *fakeBlacklistRepo) ExistsByToken(token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[token]
	return ok, nil
}

func (r *fakeBlacklistRepo) DeleteBlacklistedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for token, at := range r.entries {
		if at.Before(cutoff) {
			delete(r.entries, token)
			n++
		}
	}
	return n, nil
}

// plainHasher keeps auth tests readable and quick; the bcrypt hasher has its
// own test.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Matches(password, hash string) bool { return hash == "plain:"+password }
