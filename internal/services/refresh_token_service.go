package services

import (
	"log"
	"time"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/models"
	"linkadmin/internal/repositories"
	"linkadmin/internal/utils"
)

// RefreshTokenService keeps at most one live refresh token per user email.
type RefreshTokenService interface {
	Create(email string) (*models.RefreshToken, error)
	FindByToken(token string) (*models.RefreshToken, error)
	VerifyExpiration(token *models.RefreshToken) (*models.RefreshToken, error)
	DeleteByEmail(email string) error
}

type refreshTokenService struct {
	repo repositories.RefreshTokenRepository
	ttl  time.Duration
}

func NewRefreshTokenService(repo repositories.RefreshTokenRepository, refreshTokenTTL time.Duration) RefreshTokenService {
	return &refreshTokenService{repo: repo, ttl: refreshTokenTTL}
}

// Create supersedes any existing token for the email.
func (s *refreshTokenService) Create(email string) (*models.RefreshToken, error) {
	token, err := utils.NewOpaqueToken(32)
	if err != nil {
		return nil, err
	}
	return s.repo.Replace(email, token, time.Now().Add(s.ttl))
}

func (s *refreshTokenService) FindByToken(token string) (*models.RefreshToken, error) {
	return s.repo.GetByToken(token)
}

// VerifyExpiration deletes an expired row on sight; a dead refresh token has
// no second life.
func (s *refreshTokenService) VerifyExpiration(token *models.RefreshToken) (*models.RefreshToken, error) {
	if token.Expired(time.Now()) {
		log.Printf("[auth][refresh] token expired for email=%q", token.UserEmail)
		if err := s.repo.DeleteByToken(token.Token); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrRefreshTokenInvalid
	}
	return token, nil
}

func (s *refreshTokenService) DeleteByEmail(email string) error {
	return s.repo.DeleteByEmail(email)
}
