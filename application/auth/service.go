// Package auth runs registration, login and password reset against the
// external identity provider. The only local state is short-lived: OTP
// codes and reset tokens in redis.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"shopcore/infrastructure/identity"
	"shopcore/infrastructure/mail"
	"shopcore/infrastructure/redisx"
	"shopcore/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidOTP        = errors.New("invalid or expired verification code")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// TokenStore is the short-lived auth state, satisfied by
// redisx.AuthStore.
type TokenStore interface {
	SaveOTP(ctx context.Context, email, code string) error
	ConsumeOTP(ctx context.Context, email string) (string, error)
	SaveResetToken(ctx context.Context, token, email string) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type Service struct {
	provider identity.Provider
	store    TokenStore
	mailer   mail.Mailer
}

func NewService(provider identity.Provider, store TokenStore, mailer mail.Mailer) *Service {
	return &Service{provider: provider, store: store, mailer: mailer}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// Register creates the user (inactive) at the provider and mails a
// verification code.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	userID, err := s.provider.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	logger.Info("User registered", zap.String("user_id", userID), zap.String("email", req.Email))

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.store.SaveOTP(ctx, req.Email, code); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, req.Email, code)
}

// VerifyOTP consumes the code and activates the account. The code is
// single-use whether or not it matches.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	stored, err := s.store.ConsumeOTP(ctx, email)
	if err != nil {
		if errors.Is(err, redisx.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if stored != code {
		return ErrInvalidOTP
	}
	return s.provider.Activate(ctx, email)
}

// Login verifies credentials at the provider and returns its token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	return s.provider.VerifyCredentials(ctx, email, password)
}

// RequestPasswordReset issues a reset token. Unknown emails complete
// silently so the endpoint cannot be used to probe accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	token := uuid.New().String()
	if err := s.store.SaveResetToken(ctx, token, email); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, email, token)
}

// ConfirmPasswordReset consumes the token and sets the new password at
// the provider.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	email, err := s.store.ConsumeResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, redisx.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return s.provider.ResetPassword(ctx, email, newPassword)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
