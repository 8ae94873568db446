// Package service defines contracts for infrastructure-backed domain services.
package service

// PasswordHasher abstracts the hashing of login passwords.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether a plaintext password matches a stored hash.
	Check(password, hash string) bool
}
