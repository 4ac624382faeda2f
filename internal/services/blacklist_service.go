package services

import (
	"context"
	"log"
	"time"

	"linkadmin/internal/repositories"
)

// BlacklistService records access tokens revoked before their natural
// expiry. Entries outlive their usefulness once the underlying JWT would
// have expired anyway; the sweeper reclaims them.
type BlacklistService interface {
	BlacklistToken(token string) error
	IsTokenBlacklisted(token string) (bool, error)
	CleanupExpiredTokens(now time.Time) (int64, error)
	StartSweeper(ctx context.Context, interval time.Duration)
}

type blacklistService struct {
	repo repositories.BlacklistRepository
	// maxTokenTTL bounds how long an entry can still matter
	maxTokenTTL time.Duration
}

func NewBlacklistService(repo repositories.BlacklistRepository, maxTokenTTL time.Duration) BlacklistService {
	return &blacklistService{repo: repo, maxTokenTTL: maxTokenTTL}
}

func (s *blacklistService) BlacklistToken(token string) error {
	return s.repo.Add(token, time.Now())
}

func (s *blacklistService) IsTokenBlacklisted(token string) (bool, error) {
	return s.repo.ExistsByToken(token)
}

func (s *blacklistService) CleanupExpiredTokens(now time.Time) (int64, error) {
	return s.repo.DeleteBlacklistedBefore(now.Add(-s.maxTokenTTL))
}

// StartSweeper runs the cleanup on its own ticker, never on the request
// path. Returns once the goroutine is scheduled; cancel the context to stop.
func (s *blacklistService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.CleanupExpiredTokens(time.Now())
				if err != nil {
					log.Printf("[blacklist][sweep] cleanup failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("[blacklist][sweep] removed %d expired entries", n)
				}
			}
		}
	}()
}
