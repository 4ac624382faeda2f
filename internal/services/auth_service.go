package services

import (
	"log"
	"strings"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/repositories"
)

// AuthUser is the authenticated-identity value handed to session code: the
// id, the email the token is issued for, and the four lifecycle flags.
type AuthUser struct {
	ID                    int64
	Email                 string
	Enabled               bool
	AccountNonExpired     bool
	AccountNonLocked      bool
	CredentialsNonExpired bool
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService authenticates credentials and runs the login/logout/refresh
// session operations on top of the token, blacklist and refresh services.
type AuthService interface {
	Authenticate(email, password string) (*AuthUser, error)
	Login(email, password string) (*TokenPair, error)
	Logout(bearerHeader string) error
	Refresh(refreshToken string) (*TokenPair, error)
}

type authService struct {
	users     repositories.UserRepository
	hasher    PasswordHasher
	tokens    TokenService
	refresh   RefreshTokenService
	blacklist BlacklistService
}

func NewAuthService(
	users repositories.UserRepository,
	hasher PasswordHasher,
	tokens TokenService,
	refresh RefreshTokenService,
	blacklist BlacklistService,
) AuthService {
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		refresh:   refresh,
		blacklist: blacklist,
	}
}

// Authenticate never says which half failed; a missing account and a wrong
// password are the same answer to the caller.
func (s *authService) Authenticate(email, password string) (*AuthUser, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Printf("[auth][login] no account for email=%q", email)
		return nil, apperrors.ErrAuthenticationFailed
	}
	if !s.hasher.Matches(password, user.PasswordHash) {
		log.Printf("[auth][login] password mismatch for email=%q", email)
		return nil, apperrors.ErrAuthenticationFailed
	}
	return &AuthUser{
		ID:                    user.ID,
		Email:                 user.Email,
		Enabled:               user.Enabled,
		AccountNonExpired:     user.AccountNonExpired,
		AccountNonLocked:      user.AccountNonLocked,
		CredentialsNonExpired: user.CredentialsNonExpired,
	}, nil
}

func (s *authService) Login(email, password string) (*TokenPair, error) {
	authUser, err := s.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.GenerateToken(authUser.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.refresh.Create(authUser.Email)
	if err != nil {
		return nil, err
	}

	log.Printf("[auth][login] success email=%q", authUser.Email)
	return &TokenPair{AccessToken: access, RefreshToken: refresh.Token}, nil
}

// Logout blacklists the access token and drops the owner's refresh token.
// A token that no longer parses is blacklisted anyway and reported as
// success; logging out an expired session is harmless.
func (s *authService) Logout(bearerHeader string) error {
	if !strings.HasPrefix(bearerHeader, "Bearer ") {
		log.Printf("[auth][logout] missing bearer prefix")
		return apperrors.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(bearerHeader, "Bearer "))
	if token == "" {
		return apperrors.ErrInvalidToken
	}

	if err := s.blacklist.BlacklistToken(token); err != nil {
		return err
	}

	email, err := s.tokens.ExtractEmail(token)
	if err != nil {
		log.Printf("[auth][logout] token no longer parseable, refresh row left to expire")
		return nil
	}
	return s.refresh.DeleteByEmail(email)
}

func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	existing, err := s.refresh.FindByToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		log.Printf("[auth][refresh] unknown refresh token")
		return nil, apperrors.ErrRefreshTokenInvalid
	}
	if _, err := s.refresh.VerifyExpiration(existing); err != nil {
		return nil, err
	}

	access, err := s.tokens.GenerateToken(existing.UserEmail)
	if err != nil {
		return nil, err
	}
	// rotation: Create supersedes the presented token's row
	rotated, err := s.refresh.Create(existing.UserEmail)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: rotated.Token}, nil
}
