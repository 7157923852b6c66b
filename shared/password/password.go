package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

var (
	ErrEmpty    = errors.New("password cannot be empty")
	ErrTooLong  = fmt.Errorf("password cannot be longer than %d bytes", MaxLength)
	ErrMismatch = errors.New("password does not match")
)

// cost is a variable so tests can hash at bcrypt.MinCost.
var cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash stored on a guest account.
func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrMismatch for a wrong password or a missing hash.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
