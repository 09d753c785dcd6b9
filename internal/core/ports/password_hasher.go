package ports

// PasswordHasher provides one-way salted hashing of credentials.
type PasswordHasher interface {
	// Hash derives a salted hash from plaintext. Equal plaintexts produce
	// different hashes across calls.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. Malformed hashes fail
	// the match instead of propagating an error.
	Verify(plaintext, hash string) bool
}
