package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkadmin/internal/services"
)

type AccountHandler struct {
	accounts services.AccountService
}

func NewAccountHandler(accounts services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// @Summary      Sign up
// @Description  Creates a disabled account and mails a verification code
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/accounts/signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required,min=3,max=20"`
		Password    string `json:"password" binding:"required,min=8,max=20"`
		Email       string `json:"email" binding:"required,email"`
		FirstName   string `json:"first_name" binding:"required,min=2,max=30"`
		LastName    string `json:"last_name" binding:"required,min=2,max=30"`
		PhoneNumber string `json:"phone_number" binding:"required,min=10,max=15"`
		Address     string `json:"address" binding:"omitempty,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Signup(services.SignupRequest{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User account created successfully with email: " + user.Email,
	})
}

// @Summary      Check verification token
// @Description  Read-only probe that the verification link is still usable
// @Tags         Accounts
// @Produce      json
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  map[string]string
// @Failure      410    {object}  map[string]string
// @Router       /api/v1/accounts/verification/{token} [get]
func (h *AccountHandler) VerifyToken(c *gin.Context) {
	email, err := h.accounts.VerifyToken(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Verification token is still valid for user account with email: " + email,
		"token":   c.Param("token"),
	})
}

// @Summary      Resend verification code
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/accounts/resend-verification [post]
func (h *AccountHandler) ResendVerificationCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResendVerificationCode(req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code resent successfully to email: " + req.Email})
}

// @Summary      Validate verification code
// @Description  Enables the account when both the mailed code and the password match
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/v1/accounts/validate-code [post]
func (h *AccountHandler) ValidateCode(c *gin.Context) {
	var req struct {
		Email             string `json:"email" binding:"required,email"`
		VerificationToken string `json:"verification_token" binding:"required,min=10,max=100"`
		VerificationCode  string `json:"verification_code" binding:"required,len=6"`
		Password          string `json:"password" binding:"required,min=8,max=20"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ValidateCode(req.Email, req.VerificationCode, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User account with email: " + req.Email + " has been successfully validated and enabled",
	})
}

// @Summary      Request password reset
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/v1/accounts/reset-password [post]
func (h *AccountHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.RequestPasswordReset(req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset password code sent to email: " + req.Email})
}

// @Summary      Check reset token
// @Tags         Accounts
// @Produce      json
// @Param        token  path      string  true  "Reset password token"
// @Success      200    {object}  map[string]string
// @Failure      410    {object}  map[string]string
// @Router       /api/v1/accounts/reset-password/{token} [get]
func (h *AccountHandler) VerifyResetToken(c *gin.Context) {
	email, err := h.accounts.VerifyResetToken(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Reset password token is still valid for user account with email: " + email,
		"token":   c.Param("token"),
	})
}

// @Summary      Change password
// @Description  Replaces the password when the mailed reset code matches
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/v1/accounts/change-password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email              string `json:"email" binding:"required,email"`
		ResetPasswordToken string `json:"reset_password_token" binding:"required,min=10,max=100"`
		ResetPasswordCode  string `json:"reset_password_code" binding:"required,len=6"`
		NewPassword        string `json:"new_password" binding:"required,min=8,max=20"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ChangePassword(req.Email, req.ResetPasswordCode, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully for user account with email: " + req.Email})
}
