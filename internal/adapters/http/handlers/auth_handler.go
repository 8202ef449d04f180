package handlers

import (
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetTokenRequest represents get-token request body
type GetTokenRequest struct {
	ID string `json:"id"`
}

// ForgotPasswordRequest represents forgot-password request body
type ForgotPasswordRequest struct {
	Phone string `json:"phone"`
}

// ResetPasswordRequest represents reset-password request body
type ResetPasswordRequest struct {
	Phone    string `json:"phone"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// Signup handles account registration
// @Summary Register new account
// @Description Register a patient, worker or admin; the role selects the account kind
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Registration data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "Internal server error, try again")
	}

	return response.Success(c, "User successfully created", profile)
}

// Login handles login
// @Summary Login
// @Description Authenticate with email and password. Repeated failures lock the account progressively.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Invalid credentials, with remainingAttempts"
// @Failure 403 {object} response.Response "Account locked, with remainingTime in seconds"
// @Failure 404 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	return response.SuccessWith(c, "Successfully logged in", result.Account, fiber.Map{
		"token": result.Token,
		"role":  result.Role,
	})
}

// GetToken issues a token for an account id
// @Summary Get token by account id
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body GetTokenRequest true "Account id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/get-token [post]
func (h *AuthHandler) GetToken(c *fiber.Ctx) error {
	var req GetTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.authService.GetTokenByID(c.UserContext(), req.ID)
	if err != nil {
		return respondError(c, err, "Failed to generate token")
	}

	return response.SuccessWith(c, "Token generated", nil, fiber.Map{"token": token})
}

// ForgotPassword sends a reset code by SMS
// @Summary Forgot password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Patient phone"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /auth/forgot_password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Please enter your phone number")
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Phone); err != nil {
		return respondError(c, err, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent successfully", nil)
}

// ResetPassword sets a new password with a reset code
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Phone, otp and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/reset_password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Phone == "" || req.OTP == "" || req.Password == "" {
		return response.BadRequest(c, "Please fill all the fields")
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Phone, req.OTP, req.Password); err != nil {
		return respondError(c, err, "Failed to reset password")
	}

	return response.Success(c, "Password reset successfully", nil)
}
