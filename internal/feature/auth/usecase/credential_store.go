package usecase

// CredentialStore abstracts the "remember me" credential cache.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
// The cache holds at most one email/password pair and lives outside the
// customer store; it is never validated against it.
type CredentialStore interface {
	// Save replaces the remembered pair wholesale.
	Save(email, password string) error

	// Load returns the remembered pair. A missing or malformed cache is not
	// an error; it yields the empty pair.
	Load() (email, password string, err error)

	// Clear removes the remembered pair wholesale. Clearing an already empty
	// cache is not an error.
	Clear() error
}
