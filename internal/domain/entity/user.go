// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Every request is attributed to a
// user, and the user's role gates access to admin operations.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	FullName     string    // The user's display name or real name.
	Email        string    // The user's primary contact email, used as the login identifier.
	PasswordHash string    // Bcrypt hash of the password; never exposed outside the identity layer.
	Role         Role      // Position in the user < admin < superadmin hierarchy.
	Profile      *UserProfile
	IsVerified   bool // Whether the email address has been verified.
	IsDeleted    bool // Soft-delete flag; deleted accounts cannot log in.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile holds optional contact details for a user.
type UserProfile struct {
	PhoneNumber string
	Address     Address // Default shipping address for orders.
}
