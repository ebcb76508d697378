package security

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor for stored admin passwords.
const passwordHashCost = 12

// HashPassword hashes an admin password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, errHash := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(hash), errHash
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
