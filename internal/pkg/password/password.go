package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently drops input past 72 bytes, so longer passwords are
// rejected instead of truncated.
const maxLen = 72

var ErrTooLong = errors.New("password exceeds 72 bytes")

func Hash(plain string) (string, error) {
	if len(plain) > maxLen {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
