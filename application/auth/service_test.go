package auth

import (
	"context"
	"testing"

	"shopcore/infrastructure/identity"
	"shopcore/infrastructure/redisx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	registered map[string]string // email -> password
	activated  map[string]bool
	loginErr   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		registered: make(map[string]string),
		activated:  make(map[string]bool),
	}
}

func (p *fakeProvider) Register(ctx context.Context, email, password, name string) (string, error) {
	if _, ok := p.registered[email]; ok {
		return "", identity.ErrEmailTaken
	}
	p.registered[email] = password
	return "user-" + email, nil
}

func (p *fakeProvider) Activate(ctx context.Context, email string) error {
	if _, ok := p.registered[email]; !ok {
		return identity.ErrUserNotFound
	}
	p.activated[email] = true
	return nil
}

func (p *fakeProvider) VerifyCredentials(ctx context.Context, email, password string) (string, error) {
	if p.loginErr != nil {
		return "", p.loginErr
	}
	if p.registered[email] != password {
		return "", identity.ErrInvalidCredentials
	}
	return "token-" + email, nil
}

func (p *fakeProvider) ResetPassword(ctx context.Context, email, newPassword string) error {
	if _, ok := p.registered[email]; !ok {
		return identity.ErrUserNotFound
	}
	p.registered[email] = newPassword
	return nil
}

type fakeStore struct {
	otps   map[string]string
	resets map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{otps: make(map[string]string), resets: make(map[string]string)}
}

func (s *fakeStore) SaveOTP(ctx context.Context, email, code string) error {
	s.otps[email] = code
	return nil
}

func (s *fakeStore) ConsumeOTP(ctx context.Context, email string) (string, error) {
	code, ok := s.otps[email]
	if !ok {
		return "", redisx.ErrNotFound
	}
	delete(s.otps, email)
	return code, nil
}

func (s *fakeStore) SaveResetToken(ctx context.Context, token, email string) error {
	s.resets[token] = email
	return nil
}

func (s *fakeStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	email, ok := s.resets[token]
	if !ok {
		return "", redisx.ErrNotFound
	}
	delete(s.resets, token)
	return email, nil
}

type fakeMailer struct {
	otps   map[string]string
	resets map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{otps: make(map[string]string), resets: make(map[string]string)}
}

func (m *fakeMailer) SendOTP(ctx context.Context, email, code string) error {
	m.otps[email] = code
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.resets[email] = token
	return nil
}

func newTestService() (*Service, *fakeProvider, *fakeStore, *fakeMailer) {
	provider := newFakeProvider()
	store := newFakeStore()
	mailer := newFakeMailer()
	return NewService(provider, store, mailer), provider, store, mailer
}

func TestRegisterAndVerifyOTP(t *testing.T) {
	service, provider, store, mailer := newTestService()
	ctx := context.Background()

	err := service.Register(ctx, RegisterRequest{
		Email: "a@example.com", Password: "secret-pass", Name: "A",
	})
	require.NoError(t, err)

	code := mailer.otps["a@example.com"]
	require.Len(t, code, 6)
	assert.Equal(t, code, store.otps["a@example.com"])

	require.NoError(t, service.VerifyOTP(ctx, "a@example.com", code))
	assert.True(t, provider.activated["a@example.com"])

	// The code is single-use.
	assert.ErrorIs(t, service.VerifyOTP(ctx, "a@example.com", code), ErrInvalidOTP)
}

func TestVerifyOTP_WrongCodeConsumesIt(t *testing.T) {
	service, provider, _, mailer := newTestService()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, RegisterRequest{
		Email: "b@example.com", Password: "secret-pass", Name: "B",
	}))

	assert.ErrorIs(t, service.VerifyOTP(ctx, "b@example.com", "000000"), ErrInvalidOTP)
	assert.False(t, provider.activated["b@example.com"])

	// Even the right code fails now; a fresh one must be requested.
	assert.ErrorIs(t, service.VerifyOTP(ctx, "b@example.com", mailer.otps["b@example.com"]), ErrInvalidOTP)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	req := RegisterRequest{Email: "c@example.com", Password: "secret-pass", Name: "C"}
	require.NoError(t, service.Register(ctx, req))
	assert.ErrorIs(t, service.Register(ctx, req), identity.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, RegisterRequest{
		Email: "d@example.com", Password: "secret-pass", Name: "D",
	}))

	token, err := service.Login(ctx, "d@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-d@example.com", token)

	_, err = service.Login(ctx, "d@example.com", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestPasswordReset(t *testing.T) {
	service, provider, _, mailer := newTestService()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, RegisterRequest{
		Email: "e@example.com", Password: "old-password", Name: "E",
	}))

	require.NoError(t, service.RequestPasswordReset(ctx, "e@example.com"))
	token := mailer.resets["e@example.com"]
	require.NotEmpty(t, token)

	require.NoError(t, service.ConfirmPasswordReset(ctx, token, "new-password"))
	assert.Equal(t, "new-password", provider.registered["e@example.com"])

	// Token is single-use.
	assert.ErrorIs(t, service.ConfirmPasswordReset(ctx, token, "again"), ErrInvalidResetToken)
}
