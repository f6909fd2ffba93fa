package services

import (
	"errors"
	"fmt"
	"time"

	"estateportal/internal/common"
	"estateportal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens
type TokenService interface {
	Issue(userID uuid.UUID, email string, role models.Role) (string, error)
	Verify(token string) (*TokenClaims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *tokenService) Issue(userID uuid.UUID, email string, role models.Role) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Every failure is reported as InvalidToken.
func (s *tokenService) Verify(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err == nil && !parsed.Valid {
		err = errors.New("token is not valid")
	}
	if err != nil {
		appErr := common.NewAuthenticationError(common.CodeInvalidToken, "Invalid or expired token")
		appErr.Err = err
		return nil, appErr
	}
	return claims, nil
}
