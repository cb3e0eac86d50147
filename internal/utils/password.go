package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// HashPassword hashes the password with the configured salt appended.
func HashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password+salt matches the stored hash.
func CheckPasswordHash(password, salt, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+salt)) == nil
}
