package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// HMACTokenManager implements TokenManager with HS256-signed JWTs.
type HMACTokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewTokenManager creates a token manager signing with secret.
// Tokens expire after ttl.
func NewTokenManager(secret string, ttl time.Duration, logger *slog.Logger) (*HMACTokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}

	return &HMACTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}, nil
}

// IssueToken signs a session token whose subject is userID
func (m *HMACTokenManager) IssueToken(userID string) (string, error) {
	now := m.now()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and extracts its claims.
func (m *HMACTokenManager) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		// Prevent algorithm confusion attacks - HS256 only
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			m.logger.Debug("session token expired")
			return nil, domain.NewUnauthorized("Token expired, please login again")
		}
		m.logger.Debug("session token rejected", "error", err)
		return nil, domain.NewUnauthorized("Not authorized to access this route")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, domain.NewUnauthorized("Not authorized to access this route")
	}

	if claims.Subject == "" {
		m.logger.Debug("token missing subject claim")
		return nil, domain.NewUnauthorized("Not authorized to access this route")
	}

	return claims, nil
}
