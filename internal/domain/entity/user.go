package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleReception = "reception"
	RoleVendas    = "vendas"
)

// AdminUsername é a conta administradora criada no bootstrap; ela nunca pode
// ser excluída nem desativada.
const AdminUsername = "admin"

// ValidRole informa se o papel pertence à enumeração fixa.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleReception, RoleVendas:
		return true
	}
	return false
}

// User representa um usuário do sistema.
// Permissions guarda capacidades extras concedidas além do conjunto padrão do papel.
type User struct {
	ID                    string
	Username              string
	Email                 string
	PasswordHash          string // hash bcrypt, nunca em claro no domínio após persistir
	Role                  string // admin, manager, reception, vendas
	Permissions           []string
	Active                bool
	RequirePasswordChange bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
