package sec

import "golang.org/x/crypto/bcrypt"

// ComparePassword returns an error if the provided password does not resolve to
// the given hash. The comparison is constant-time within bcrypt.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// HashPassword generates the hash for a given password at the given work
// factor. It errors if the password is longer than 72 bytes or the cost is
// out of bcrypt's range.
func HashPassword[T ~string | ~[]byte](password T, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}
