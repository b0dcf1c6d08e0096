package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords over bcrypt's 72-byte
// input limit. bcrypt would otherwise truncate silently, making
// passwords that share a 72-byte prefix interchangeable.
var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

// HashPassword derives a bcrypt hash of the password at the given
// cost. Costs below bcrypt's minimum fall back to the library default
// so a misconfigured cost cannot weaken stored credentials.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > 72 {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
