package services

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// IsPasswordHashed reports whether stored holds a bcrypt hash rather than
// a legacy plaintext password.
func IsPasswordHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares a candidate against the stored value. legacy is
// true when the match was against a plaintext value that should be
// re-hashed.
func CheckPassword(stored, candidate string) (ok bool, legacy bool) {
	if stored == "" {
		return false, false
	}
	if IsPasswordHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil, false
	}
	match := subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	return match, match
}
