package ports

// PasswordHasher hashes and verifies passwords. Verify never panics on a
// malformed hash; it reports false instead.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}
