package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController defines the login and password reset endpoints
type InterfaceAuthController interface {
	Login()
	VerifyOTP()
	ResendOTP()
	RequestPasswordReset()
	ConfirmPasswordReset()
}

// AuthController handles OTP-gated authentication
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// OTPRequest carries a code sent by email
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// EmailRequest names the account an OTP is for
type EmailRequest struct {
	Email string `json:"email"`
}

// NewAuthController creates an auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *AuthController) service() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

// Login checks credentials and emails a login code
func (c *AuthController) Login() {
	var in services.LoginInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	challenge, err := c.service().Login(c.Ctx.Request.Context(), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error during login")
		return
	}
	response.Success(c.Ctx, "OTP sent to your email", gin.H{
		"email":  challenge.Email,
		"userId": challenge.UserID,
	})
}

// VerifyOTP exchanges a login code for a session token
func (c *AuthController) VerifyOTP() {
	var req OTPRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	result, err := c.service().VerifyOTP(c.Ctx.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c.Ctx, err, "Server error during OTP verification")
		return
	}
	response.Success(c.Ctx, "Login successful", gin.H{
		"token":                result.Token,
		"user":                 result.User,
		"must_change_password": result.User.MustChangePassword,
	})
}

// ResendOTP emails a fresh login code
func (c *AuthController) ResendOTP() {
	var req EmailRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if err := c.service().ResendOTP(c.Ctx.Request.Context(), req.Email); err != nil {
		response.Error(c.Ctx, err, "Server error during OTP resend")
		return
	}
	response.Success(c.Ctx, "OTP resent to your email", nil)
}

// RequestPasswordReset emails a reset code
func (c *AuthController) RequestPasswordReset() {
	var req EmailRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if err := c.service().RequestPasswordReset(c.Ctx.Request.Context(), req.Email); err != nil {
		response.Error(c.Ctx, err, "Server error during password reset request")
		return
	}
	response.Success(c.Ctx, "OTP sent to your email for password reset", nil)
}

// ConfirmPasswordReset consumes a reset code and emails a temporary password
func (c *AuthController) ConfirmPasswordReset() {
	var req OTPRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if err := c.service().ConfirmPasswordReset(c.Ctx.Request.Context(), req.Email, req.OTP); err != nil {
		response.Error(c.Ctx, err, "Server error during password reset confirmation")
		return
	}
	response.Success(c.Ctx, "A temporary password has been sent to your email", nil)
}

// HandleAuthFunc returns a gin handler for the auth controller
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "verifyOTP":
			controller.VerifyOTP()
		case "resendOTP":
			controller.ResendOTP()
		case "requestPasswordReset":
			controller.RequestPasswordReset()
		case "confirmPasswordReset":
			controller.ConfirmPasswordReset()
		default:
			unknownMethod(ctx)
		}
	}
}
