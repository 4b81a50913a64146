package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt hash stored in users.password_hash.  The
// cost comes from configuration (BCRYPT_COST); tests pass the minimum cost
// to keep hashing fast.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(b), err
}

// VerifyPassword reports whether plain matches the stored hash.  A hash in
// an unknown format simply fails verification.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
