package model

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// UserID is a UUID-based identifier for User
type UserID string

// NewUserID generates a new UUID v7 UserID
func NewUserID() UserID {
	return UserID(uuid.Must(uuid.NewV7()).String())
}

func (id UserID) String() string {
	return string(id)
}

// Credentials is the OAuth token pair of a user on the fitness platform
type Credentials struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// LogValue hides the tokens
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("access_token.len", len(c.AccessToken)),
		slog.Int("refresh_token.len", len(c.RefreshToken)),
		slog.Time("expires_at", c.ExpiresAt),
	)
}

// User is an account that connected the fitness platform
type User struct {
	ID          UserID
	AthleteID   int64
	FirstName   string
	LastName    string
	Email       string // empty when the user has not provided one
	Credentials Credentials
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasEmail reports whether notifications can be sent to the user
func (u *User) HasEmail() bool {
	return u.Email != ""
}
