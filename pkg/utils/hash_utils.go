package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used for stored passwords
var HashCost = bcrypt.DefaultCost

// HashPassword hashes password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares password against a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
