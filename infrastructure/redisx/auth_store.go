// Package redisx holds the redis-backed short-lived auth state: OTP
// codes and password-reset tokens, both expiring by TTL.
package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcore/config"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the code or token is absent or already expired.
var ErrNotFound = errors.New("auth entry not found or expired")

func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type AuthStore struct {
	client   *redis.Client
	otpTTL   time.Duration
	resetTTL time.Duration
}

func NewAuthStore(client *redis.Client, otpTTL, resetTTL time.Duration) *AuthStore {
	return &AuthStore{client: client, otpTTL: otpTTL, resetTTL: resetTTL}
}

func otpKey(email string) string   { return "auth:otp:" + email }
func resetKey(token string) string { return "auth:reset:" + token }

// SaveOTP stores the verification code for the email, replacing any
// previous one.
func (s *AuthStore) SaveOTP(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, otpKey(email), code, s.otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to save otp: %w", err)
	}
	return nil
}

// ConsumeOTP fetches and deletes the code so it can be used once.
func (s *AuthStore) ConsumeOTP(ctx context.Context, email string) (string, error) {
	code, err := s.client.GetDel(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}
	return code, nil
}

// SaveResetToken maps a reset token to the email it was issued for.
func (s *AuthStore) SaveResetToken(ctx context.Context, token, email string) error {
	if err := s.client.Set(ctx, resetKey(token), email, s.resetTTL).Err(); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken resolves the token to its email and deletes it.
func (s *AuthStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}
	return email, nil
}
