package ports

import "time"

// AuthClaims is the resolved principal carried by a session token.
type AuthClaims struct {
	AdminID string
	Email   string
	Name    string
	Role    string
}

type TokenSigner interface {
	Sign(claims AuthClaims, ttl time.Duration) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (AuthClaims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
