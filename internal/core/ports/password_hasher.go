package ports

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Matches never errors: malformed hashes simply do not match.
	Matches(hash, password string) bool
}
