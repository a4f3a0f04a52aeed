package domain

import (
	"context"
	"strings"
	"time"
)

// Role is an application role assigned to a user.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEventCreator Role = "event_creator"
	RoleParticipant  Role = "participant"
)

// ParseRole parses a role string case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEventCreator:
		return RoleEventCreator, true
	case RoleParticipant:
		return RoleParticipant, true
	}
	return "", false
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User. Email is stored lowercased. ID is set by the
// caller or the repository on create.
func NewUser(email, passwordHash string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenClaims are the claims extracted from a verified token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   Role
}

// TokenVerifier verifies a token and returns the authenticated user's claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// UserService defines registration and login.
type UserService interface {
	Register(ctx context.Context, email, password, role string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
