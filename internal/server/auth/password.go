package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way digest of plaintext. A fresh salt
// is generated on every call and embedded in the output, so no separate salt
// storage is needed.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. The
// comparison is constant-time. A malformed hash yields false, never a
// distinct error: to the caller both cases mean "not authenticated".
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
