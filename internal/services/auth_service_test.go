package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/memstore"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
)

func newAuthService() (*services.AuthService, *config.Config) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: 15 * time.Minute}
	return services.NewAuthService(memstore.New(), cfg), cfg
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, cfg := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Maria@Example.com ", Password: "correct-horse", Name: " Maria "})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", reg.Member.Email)
	assert.Equal(t, "Maria", reg.Member.Name)
	assert.Equal(t, "member", reg.Member.Role)
	assert.NotEmpty(t, reg.Member.ID)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "MARIA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.Member.ID, login.Member.ID)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(login.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, reg.Member.ID, claims["sub"])
	assert.Equal(t, "member", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, time.Minute)
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "maria@example.com", Password: "correct-horse", Name: "Maria"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "Maria@example.com", Password: "other-password", Name: "Maria"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "maria@example.com", Password: "correct-horse", Name: "Maria"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "maria@example.com", Password: "wrong-horse"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
