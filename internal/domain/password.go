package domain

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost costs roughly 100ms per hash on current hardware.
const DefaultBcryptCost = 10

// HashPassword derives a salted bcrypt hash of plain. Callers invoke it only
// when a password is being set, never when re-saving an existing record.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword re-derives the hash with the stored salt and compares in
// constant time. Any mismatch or malformed hash returns false.
func ComparePassword(hash, candidate string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
