// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService defines the interface for password hashing and verification.
type PasswordService interface {
	// HashPassword derives a storable hash from a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a plain text password against a stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords that fall below the
	// minimum password policy.
	ValidatePasswordStrength(password string) error
}
