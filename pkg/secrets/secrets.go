package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "medmcp/pkg/domain-errors"
)

// Generate returns 32 random bytes, base64url encoded. Used for signing keys.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash creates a bcrypt hash of the provided secret at the default cost.
func Hash(secret string) ([]byte, error) {
	return HashWithCost(secret, bcrypt.DefaultCost)
}

func HashWithCost(secret string, cost int) ([]byte, error) {
	if secret == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeValidation, "secret is too long")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash secret")
	}
	return hashed, nil
}

// Matches reports whether secret matches hash. A malformed hash is an error,
// a wrong or over-long secret is simply false.
func Matches(secret string, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "could not verify secret")
	}
}

// Equal compares two strings in constant time with respect to their contents.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
