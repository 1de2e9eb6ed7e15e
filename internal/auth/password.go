// Package auth implements password hashing for admin accounts.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. The stored format is "hex(key).salt" with a 64-byte
// derived key and a random 16-byte hex-encoded salt.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives a salted scrypt hash for storage.
func HashPassword(password string) (string, error) {
	saltBytes := make([]byte, saltLen)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hex.EncodeToString(key) + "." + salt, nil
}

// VerifyPassword checks a password against a stored hash in constant time.
func VerifyPassword(password, stored string) (bool, error) {
	hashHex, salt, ok := strings.Cut(stored, ".")
	if !ok || hashHex == "" || salt == "" {
		return false, fmt.Errorf("malformed password hash")
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
