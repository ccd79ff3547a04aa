package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens. Construction fails when the
// secret is empty so the service refuses to start without one.
type TokenManager struct {
	secret      []byte
	accessTTL   time.Duration
	rememberTTL time.Duration
	refreshTTL  time.Duration
}

func NewTokenManager(secret string, accessTTL, rememberTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return &TokenManager{
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		rememberTTL: rememberTTL,
		refreshTTL:  refreshTTL,
	}, nil
}

func (m *TokenManager) CreateAccessToken(userID uuid.UUID, email, role string, rememberMe bool) (string, time.Time, error) {
	ttl := m.accessTTL
	if rememberMe {
		ttl = m.rememberTTL
	}
	return m.create(userID, email, role, TokenTypeAccess, ttl)
}

func (m *TokenManager) CreateRefreshToken(userID uuid.UUID, email, role string) (string, time.Time, error) {
	return m.create(userID, email, role, TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) create(userID uuid.UUID, email, role, tokenType string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		UserID:    userID.String(),
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	return signed, expiresAt, err
}

// Validate verifies signature and expiry. Expired tokens come back as
// ErrTokenExpired, anything else broken as ErrTokenInvalid, so the caller
// can answer with a distinct message for each.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateRefresh additionally requires the refresh token type.
func (m *TokenManager) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := m.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
