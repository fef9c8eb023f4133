package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// Account is an admin or teacher login.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never sent back
	Role      Role               `bson:"role" json:"role"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CurrentUser is the identity the session middleware injects into each request.
type CurrentUser struct {
	ID    primitive.ObjectID
	Email string
	Role  Role
}

func (u *CurrentUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type AccountFilter struct {
	Role       Role
	ActiveOnly bool
	Search     string
}

// --- DTOs ---

type LoginDto struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAccountDto struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=admin teacher"`
}

type UpdateAccountDto struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}
