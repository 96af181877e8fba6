package auth

import (
	"docscabinet/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against the stored bcrypt
// secret. The secret is never reversible; this is the only way in.
func VerifyPassword(storedHash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return apperr.New(apperr.IncorrectPassword)
	}
	return nil
}
