package dto

import "time"

// LoginRequest credenciais de login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// RegisterRequest criação de usuário (admin/gerente).
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest atualização de cadastro de usuário.
// Ponteiros distinguem "não enviado" de zero.
type UpdateUserRequest struct {
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// UpdatePermissionsRequest substitui o conjunto de concessões extras do usuário.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// ChangePasswordRequest troca de senha do próprio usuário.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse usuário sem campos sensíveis.
type UserResponse struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	Permissions           []string  `json:"permissions"`
	Active                bool      `json:"active"`
	RequirePasswordChange bool      `json:"require_password_change"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
