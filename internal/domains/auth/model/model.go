package model

import (
	"strings"
	"time"
)

// Identity is the guest record checkout needs from a session.
type Identity struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// IsZero reports whether no session identity is present.
func (i Identity) IsZero() bool {
	return i.ID == ""
}

type Account struct {
	Identity
	PasswordHash string
	CreatedAt    time.Time
}
