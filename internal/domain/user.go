package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleHost  UserRole = "host"
	RoleGuest UserRole = "guest"
)

func ValidUserRoles() []UserRole {
	return []UserRole{RoleHost, RoleGuest}
}

// User is owned by the account subsystem; this layer only references it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(username, email, firstName, lastName string, role UserRole, now time.Time) (*User, error) {
	fe := fieldErrors{}
	if username == "" {
		fe.add("username", "This field may not be blank.")
	}
	if role != RoleHost && role != RoleGuest {
		fe.add("role", "Must be one of: host, guest.")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
