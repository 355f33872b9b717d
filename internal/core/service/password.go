package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// HashPassword derives a salted one-way digest from a plaintext password.
// bcrypt generates a fresh salt per call, so hashing the same input twice
// yields different digests. An empty plaintext is rejected up front instead
// of being silently hashed.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
