package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"finvoice/internal/config"
	"finvoice/internal/domain"
)

// Claims represents the JWT claims for the operator session.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginOutput holds the issued token.
type LoginOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService defines the single-operator authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig) AuthService {
	return &authService{jwtCfg: jwtCfg, adminCfg: adminCfg}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.adminCfg.Username)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}

	if s.adminCfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.adminCfg.PasswordHash), []byte(input.Password)); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.adminCfg.Password)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtCfg.TokenExpiry)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   input.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: input.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("auth.Login sign: %w", err)
	}

	return &LoginOutput{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
