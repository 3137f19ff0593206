package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a raw password with bcrypt. The raw value is never
// persisted.
func HashPassword(raw string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt digest.
func VerifyPassword(raw, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}
