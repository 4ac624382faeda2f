package services

import (
	"log"
	"strings"
	"time"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/config"
	"linkadmin/internal/models"
	"linkadmin/internal/repositories"
	"linkadmin/internal/utils"
)

type SignupRequest struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// AccountService drives the two challenge-gated state machines: signup
// verification (disabled account -> enabled) and password recovery (enabled
// account -> password replaced). Both run on the same Challenge tuple.
type AccountService interface {
	Signup(req SignupRequest) (*models.User, error)
	VerifyToken(token string) (string, error)
	ResendVerificationCode(email string) error
	ValidateCode(email, code, password string) error
	RequestPasswordReset(email string) error
	VerifyResetToken(token string) (string, error)
	ChangePassword(email, code, newPassword string) error
}

type accountService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	emails EmailService
	cfg    config.ServiceConfig
}

func NewAccountService(
	users repositories.UserRepository,
	hasher PasswordHasher,
	emails EmailService,
	cfg config.ServiceConfig,
) AccountService {
	return &accountService{
		users:  users,
		hasher: hasher,
		emails: emails,
		cfg:    cfg,
	}
}

// Signup creates a disabled account with a fresh verification challenge and
// mails the code. The caller never waits on mail delivery.
func (s *accountService) Signup(req SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Printf("[account][signup] account already exists for email=%q", email)
		return nil, apperrors.ErrAccountExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:              req.Username,
		Email:                 email,
		PasswordHash:          hash,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		Provider:              models.AuthProviderLocal,
		Enabled:               false,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}

	code, err := s.issueChallenge(&user.Verification, s.cfg.VerificationTokenTTL.Std())
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.mailVerification(user, code)
	log.Printf("[account][signup] created disabled account email=%q", email)
	return user, nil
}

// VerifyToken is a read-only probe used before showing the code-entry form;
// it mutates nothing.
func (s *accountService) VerifyToken(token string) (string, error) {
	user, err := s.users.GetByVerificationToken(token)
	if err != nil {
		return "", err
	}
	if user == nil {
		log.Printf("[account][verify] no account for verification token")
		return "", apperrors.ErrAccountNotFound
	}
	if user.Verification.Expired(time.Now()) {
		log.Printf("[account][verify] verification token expired for email=%q", user.Email)
		return "", apperrors.ErrVerificationExpired
	}
	return user.Email, nil
}

// ResendVerificationCode mints a fresh token+code pair. The attempt counter
// is deliberately left alone: resending is not a way to buy more guesses.
func (s *accountService) ResendVerificationCode(email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[account][resend] no account for email=%q", email)
		return apperrors.ErrAccountNotFound
	}
	if user.Enabled {
		log.Printf("[account][resend] account already enabled email=%q", email)
		return apperrors.ErrAccountAlreadyEnabled
	}

	code, err := s.issueChallenge(&user.Verification, s.cfg.VerificationTokenTTL.Std())
	if err != nil {
		return err
	}
	if err := s.users.Save(user); err != nil {
		return err
	}

	s.mailVerification(user, code)
	return nil
}

// ValidateCode is the double-factor check: the mailed code AND the account
// password must both match before the account is enabled.
func (s *accountService) ValidateCode(email, code, password string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[account][validate] no account for email=%q", email)
		return apperrors.ErrAccountNotFound
	}
	if user.Verification.Expired(time.Now()) {
		log.Printf("[account][validate] verification expired for email=%q", email)
		return apperrors.ErrVerificationExpired
	}
	if user.Verification.Attempts >= s.cfg.MaxVerificationCodeAttempts {
		log.Printf("[account][validate] attempt limit reached for email=%q", email)
		return apperrors.ErrMaxVerificationAttempts
	}

	codeValid := user.Verification.CodeMatches(code)
	passwordValid := s.hasher.Matches(password, user.PasswordHash)
	if !codeValid || !passwordValid {
		user.Verification.Attempts++
		if err := s.users.Save(user); err != nil {
			return err
		}
		log.Printf("[account][validate] code or password mismatch for email=%q attempts=%d", email, user.Verification.Attempts)
		return apperrors.ErrInvalidCodeOrPassword
	}

	user.Enabled = true
	user.Verification.Clear()
	if err := s.users.Save(user); err != nil {
		return err
	}
	log.Printf("[account][validate] account enabled email=%q", email)
	return nil
}

// RequestPasswordReset starts recovery for an enabled account.
func (s *accountService) RequestPasswordReset(email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[account][reset] no account for email=%q", email)
		return apperrors.ErrAccountNotFound
	}
	if !user.Enabled {
		log.Printf("[account][reset] account not enabled email=%q", email)
		return apperrors.ErrAccountNotEnabled
	}
	if user.Reset.Attempts >= s.cfg.MaxResetPasswordAttempts {
		log.Printf("[account][reset] attempt limit reached for email=%q", email)
		return apperrors.ErrMaxResetAttempts
	}

	code, err := s.issueChallenge(&user.Reset, s.cfg.ResetPasswordTokenTTL.Std())
	if err != nil {
		return err
	}
	if err := s.users.Save(user); err != nil {
		return err
	}

	resetUrl := s.cfg.BaseHostPath + "/api/v1/accounts/reset-password/" + *user.Reset.Token
	s.sendMailAsync(user.Email, "Reset Your Password", TemplateResetPassword, map[string]any{
		"userName":  user.FirstName,
		"resetCode": code,
		"resetUrl":  resetUrl,
	})
	return nil
}

// VerifyResetToken is the read-only probe for the reset link.
func (s *accountService) VerifyResetToken(token string) (string, error) {
	user, err := s.users.GetByResetToken(token)
	if err != nil {
		return "", err
	}
	if user == nil {
		log.Printf("[account][reset] no account for reset token")
		return "", apperrors.ErrAccountNotFound
	}
	if user.Reset.Expired(time.Now()) {
		log.Printf("[account][reset] reset token expired for email=%q", user.Email)
		return "", apperrors.ErrResetExpired
	}
	return user.Email, nil
}

func (s *accountService) ChangePassword(email, code, newPassword string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[account][change-password] no account for email=%q", email)
		return apperrors.ErrAccountNotFound
	}
	if user.Reset.Expired(time.Now()) {
		log.Printf("[account][change-password] reset expired for email=%q", email)
		return apperrors.ErrResetExpired
	}
	if user.Reset.Attempts >= s.cfg.MaxResetPasswordAttempts {
		log.Printf("[account][change-password] attempt limit reached for email=%q", email)
		return apperrors.ErrMaxResetAttempts
	}

	if !user.Reset.CodeMatches(code) {
		user.Reset.Attempts++
		if err := s.users.Save(user); err != nil {
			return err
		}
		log.Printf("[account][change-password] reset code mismatch for email=%q attempts=%d", email, user.Reset.Attempts)
		return apperrors.ErrInvalidResetCode
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Reset.Clear()
	if err := s.users.Save(user); err != nil {
		return err
	}
	log.Printf("[account][change-password] password replaced for email=%q", email)
	return nil
}

// normalizeEmail keys every lookup the same way Signup stores the address;
// email is case-insensitive to the user but one exact string to the store.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// issueChallenge overwrites the tuple with a fresh token and code. The
// attempt counter is untouched; callers that want it reset get that through
// Clear on success.
func (s *accountService) issueChallenge(ch *models.Challenge, ttl time.Duration) (string, error) {
	code, err := utils.GenerateCode()
	if err != nil {
		return "", err
	}
	ch.Issue(utils.NewChallengeToken(), code, time.Now().Add(ttl))
	return code, nil
}

func (s *accountService) mailVerification(user *models.User, code string) {
	verificationUrl := s.cfg.BaseHostPath + "/api/v1/accounts/verification/" + *user.Verification.Token
	s.sendMailAsync(user.Email, "Welcome to Our Service - Email Verification", TemplateVerifyAccount, map[string]any{
		"userName":         user.FirstName,
		"verificationCode": code,
		"verificationUrl":  verificationUrl,
	})
}

// sendMailAsync dispatches delivery on its own goroutine; mail problems are
// logged and never become request failures.
func (s *accountService) sendMailAsync(to, subject, templateName string, vars map[string]any) {
	if s.emails == nil {
		return
	}
	go func() {
		if err := s.emails.SendTemplated(to, subject, templateName, vars); err != nil {
			log.Printf("[mail][%s] send to %s failed: %v", templateName, to, err)
		}
	}()
}
