// Package mail defines the outgoing mail boundary. Actual delivery is a
// deployment concern; the application only depends on the interface.
package mail

import (
	"context"

	"shopcore/pkg/logger"

	"go.uber.org/zap"
)

type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LoggingMailer logs instead of sending. Codes are logged in full on
// purpose; it only runs in development.
type LoggingMailer struct{}

func (m *LoggingMailer) SendOTP(ctx context.Context, email, code string) error {
	logger.Info("OTP mail",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}

func (m *LoggingMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	logger.Info("Password reset mail",
		zap.String("email", email),
		zap.String("token", token),
	)
	return nil
}

var _ Mailer = (*LoggingMailer)(nil)
