// Package domain holds the entities shared by the store, handlers and chatbot.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role is a platform role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleEditor    Role = "editor"
	RolePublisher Role = "publisher"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains([]Role{RoleUser, RoleAdmin, RoleEditor, RolePublisher}, r)
}

// CanPublish reports whether r may create posts.
func (r Role) CanPublish() bool {
	return r == RoleAdmin || r == RoleEditor || r == RolePublisher
}

// VerificationStatus tracks the publisher verification flow.
type VerificationStatus string

const (
	VerificationNormal   VerificationStatus = "normal"
	VerificationApplied  VerificationStatus = "applied"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// User is a platform account.
type User struct {
	ID                 uuid.UUID          `db:"id"                  json:"id"`
	Name               string             `db:"name"                json:"name"`
	Email              string             `db:"email"               json:"email"`
	PasswordHash       string             `db:"password_hash"       json:"-"`
	Role               Role               `db:"role"                json:"role"`
	RequestedRole      *string            `db:"requested_role"      json:"requestedRole,omitempty"`
	Avatar             *string            `db:"avatar"              json:"avatar,omitempty"`
	Bio                *string            `db:"bio"                 json:"bio,omitempty"`
	Portfolio          *string            `db:"portfolio"           json:"portfolio,omitempty"`
	Contact            *string            `db:"contact"             json:"contact,omitempty"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verificationStatus"`
	Interests          pq.StringArray     `db:"interests"           json:"interests"`
	CreatedAt          time.Time          `db:"created_at"          json:"createdAt"`
	UpdatedAt          time.Time          `db:"updated_at"          json:"updatedAt"`
}

// Verified reports whether the account passed publisher verification.
func (u *User) Verified() bool {
	return u.VerificationStatus == VerificationApproved
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string `binding:"required"       json:"name"`
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required,min=6" json:"password"` //nolint:gosec // request payload
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `binding:"required" json:"email"`
	Password string `binding:"required" json:"password"` //nolint:gosec // request payload
}

// ProfileUpdateRequest patches the caller's own profile.
type ProfileUpdateRequest struct {
	Name      *string `json:"name"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
	Portfolio *string `json:"portfolio"`
	Contact   *string `json:"contact"`
}

// RoleUpdateRequest is the admin role change payload.
type RoleUpdateRequest struct {
	Role Role `binding:"required" json:"role"`
}
