package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the admin password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SecretVerifier checks the admin password against the configured shared
// secret, or against a bcrypt hash when one is configured.
type SecretVerifier struct {
	secret []byte
	hash   []byte
}

// NewSecretVerifier returns a verifier. A non-empty bcryptHash takes precedence
// over secret.
func NewSecretVerifier(secret, bcryptHash string) *SecretVerifier {
	v := &SecretVerifier{secret: []byte(secret)}
	if bcryptHash != "" {
		v.hash = []byte(bcryptHash)
	}
	return v
}

// Verify returns nil when password matches, ErrInvalidCredentials otherwise.
// An unconfigured secret never matches.
func (v *SecretVerifier) Verify(password string) error {
	if v.hash != nil {
		if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if len(v.secret) == 0 || subtle.ConstantTimeCompare(v.secret, []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// HashSecret produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashSecret(secret string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
