package auth

import "github.com/restodeals/backend/internal/users"

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Role     string `json:"role" validate:"required,oneof=customer owner"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse pairs the minted access token with the user it represents.
type SessionResponse struct {
	Token string             `json:"token"`
	User  users.UserResponse `json:"user"`
}
