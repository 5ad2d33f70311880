package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"finvoice/internal/config"
	"finvoice/internal/domain"
	"finvoice/internal/service"
)

func testAuthService(t *testing.T) service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService(
		config.JWTConfig{Secret: "test-secret", TokenExpiry: time.Hour, Issuer: "finvoice"},
		config.AdminConfig{Username: "admin", PasswordHash: string(hash)},
	)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := testAuthService(t)

	out, err := svc.Login(context.Background(), service.LoginInput{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.True(t, out.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "finvoice", claims.Issuer)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(context.Background(), service.LoginInput{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), service.LoginInput{Username: "intruder", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateRejectsGarbage(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
