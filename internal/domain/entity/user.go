// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the PayTrack system.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	EmailNotifications bool
	TermsAcceptedAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		EmailNotifications: true,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
