package auth

import "imagefolders/internal/domain/models"

// TokenManager issues and verifies session tokens bound to a user id.
type TokenManager interface {
	// IssueToken signs a new session token for userID
	IssueToken(userID string) (string, error)

	// VerifyToken validates a token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SessionClaims, error)
}

// PasswordHasher hashes and compares passwords
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}
