// Package auth exposes registration, login and password reset. These
// routes are public; everything else in the API sits behind the
// authenticated group.
package auth

import (
	"net/http"

	"shopcore/api/response"
	authapp "shopcore/application/auth"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	authService *authapp.Service
}

func NewController(authService *authapp.Service) *Controller {
	return &Controller{authService: authService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", c.Register)
		authGroup.POST("/verify-otp", c.VerifyOTP)
		authGroup.POST("/login", c.Login)
		authGroup.POST("/password-reset/request", c.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", c.ConfirmPasswordReset)
	}
}

// Register creates an inactive account and mails a verification code.
// POST /api/v1/auth/register
func (c *Controller) Register(ctx *gin.Context) {
	var req authapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.authService.Register(ctx.Request.Context(), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, nil, "registered, check your email for the verification code")
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyOTP consumes the emailed code and activates the account.
// POST /api/v1/auth/verify-otp
func (c *Controller) VerifyOTP(ctx *gin.Context) {
	var req verifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.authService.VerifyOTP(ctx.Request.Context(), req.Email, req.Code); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "account activated")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and returns the provider token.
// POST /api/v1/auth/login
func (c *Controller) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, loginResponse{Token: token}, "logged in")
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset mails a reset token. The response is identical
// whether or not the email is known.
// POST /api/v1/auth/password-reset/request
func (c *Controller) RequestPasswordReset(ctx *gin.Context) {
	var req passwordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.authService.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "if the email is registered, a reset link was sent")
}

type passwordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ConfirmPasswordReset consumes the token and sets the new password.
// POST /api/v1/auth/password-reset/confirm
func (c *Controller) ConfirmPasswordReset(ctx *gin.Context) {
	var req passwordResetConfirm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.authService.ConfirmPasswordReset(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "password updated")
}
