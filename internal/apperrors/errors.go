package apperrors

// Error is the taxonomy every expected failure of the auth core belongs to.
// Code is a stable numeric identifier the transport layer maps onto an HTTP
// status, Cause is the machine-readable tag clients switch on. Services
// return these as plain error values; nothing here knows about HTTP.
type Error struct {
	Code    int
	Message string
	Cause   string
}

func (e *Error) Error() string { return e.Message }

var (
	// account lifecycle
	ErrAccountExists           = &Error{Code: 409, Message: "User account already exists", Cause: "UserAccountAlreadyExistsException"}
	ErrAccountNotFound         = &Error{Code: 404, Message: "User account not found", Cause: "UserNotFoundException"}
	ErrAccountAlreadyEnabled   = &Error{Code: 409, Message: "User account is already enabled", Cause: "UserAccountAlreadyEnabledException"}
	ErrAccountNotEnabled       = &Error{Code: 403, Message: "User account is not enabled", Cause: "UserAccountNotEnabledException"}
	ErrVerificationExpired     = &Error{Code: 410, Message: "Verification token has expired", Cause: "VerificationTokenExpiredException"}
	ErrMaxVerificationAttempts = &Error{Code: 429, Message: "Maximum verification code attempts reached", Cause: "MaximumVerificationCodeAttemptsReachedException"}
	ErrInvalidCodeOrPassword   = &Error{Code: 401, Message: "Invalid verification code or password", Cause: "InvalidVerificationCodeOrPasswordException"}
	ErrResetExpired            = &Error{Code: 410, Message: "Reset password token has expired", Cause: "ResetPasswordTokenExpiredException"}
	ErrMaxResetAttempts        = &Error{Code: 429, Message: "Maximum reset password attempts reached", Cause: "MaximumResetPasswordAttemptsReachedException"}
	ErrInvalidResetCode        = &Error{Code: 400, Message: "Invalid reset password code", Cause: "InvalidResetPasswordCodeException"}

	// sessions
	ErrAuthenticationFailed = &Error{Code: 401, Message: "Authentication failed", Cause: "InvalidCredentialsException"}
	ErrInvalidToken         = &Error{Code: 403, Message: "Invalid or expired token", Cause: "InvalidTokenException"}
	ErrRefreshTokenInvalid  = &Error{Code: 403, Message: "Refresh token is invalid or expired", Cause: "RefreshTokenInvalidException"}

	// urls
	ErrUrlNotFound = &Error{Code: 404, Message: "Url not found", Cause: "UrlNotFoundException"}

	// collaborator failure; always fatal to the operation, never retried here
	ErrStorageUnavailable = &Error{Code: 500, Message: "Storage unavailable", Cause: "StorageUnavailableException"}
)
