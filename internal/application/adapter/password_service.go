package adapter

// PasswordService hashes account passwords and enforces the password rule.
type PasswordService interface {
	Hash(password string) (string, error)

	// Matches reports whether password produced hash. An empty hash, as on
	// Google-only accounts, never matches.
	Matches(hash, password string) bool

	// CheckStrength returns an *AuthError with ErrCodeWeakPassword when the
	// password is too short to be accepted for a new or reset account.
	CheckStrength(password string) error
}
