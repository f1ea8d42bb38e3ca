// Package permission centraliza a decisão de autorização do sistema.
// O mesmo avaliador é consumido pelos middlewares HTTP e pelos casos de uso,
// evitando divergência entre o que a UI mostra e o que o backend permite.
package permission

import "github.com/rmacedo/caixa-api/internal/domain/entity"

// Capability é uma permissão nomeada que um papel ou usuário pode possuir.
type Capability string

// Capacidades conhecidas.
const (
	ManageUsers      Capability = "manage_users"
	ManageProducts   Capability = "manage_products"
	ManageClients    Capability = "manage_clients"
	ManageBills      Capability = "manage_bills"
	CashOperations   Capability = "cash_operations"
	RegisterSales    Capability = "register_sales"
	ViewActivityLogs Capability = "view_activity_logs"
	ViewPerformance  Capability = "view_performance"
)

// roleDefaults é o conjunto padrão de capacidades por papel.
// Admin não aparece aqui: tem tudo por definição (curto-circuito em Can).
var roleDefaults = map[string][]Capability{
	entity.RoleManager: {
		ManageUsers, ManageProducts, ManageClients, ManageBills,
		CashOperations, RegisterSales, ViewActivityLogs, ViewPerformance,
	},
	entity.RoleReception: {CashOperations},
	entity.RoleVendas:    {RegisterSales},
}

// Can decide se um usuário com o papel e as concessões extras informadas pode
// exercer a capacidade. Ordem de resolução: admin → padrão do papel →
// concessão individual → nega. Função pura, sem efeitos colaterais; quem
// chama é responsável por tratar false como falha de autorização explícita.
func Can(role string, granted []string, cap Capability) bool {
	if role == entity.RoleAdmin {
		return true
	}
	for _, c := range roleDefaults[role] {
		if c == cap {
			return true
		}
	}
	for _, g := range granted {
		if Capability(g) == cap {
			return true
		}
	}
	return false
}

// CanUser é o atalho para avaliar diretamente uma entidade User.
func CanUser(u *entity.User, cap Capability) bool {
	if u == nil {
		return false
	}
	return Can(u.Role, u.Permissions, cap)
}

// Known informa se a capacidade pertence ao vocabulário do sistema.
// Usado ao validar concessões individuais vindas da API.
func Known(cap Capability) bool {
	switch cap {
	case ManageUsers, ManageProducts, ManageClients, ManageBills,
		CashOperations, RegisterSales, ViewActivityLogs, ViewPerformance:
		return true
	}
	return false
}

// assignableByManager são os papéis que um gerente pode atribuir ao criar usuários.
var assignableByManager = map[string]bool{
	entity.RoleReception: true,
	entity.RoleVendas:    true,
}

// RoleAssignmentError descreve uma violação da hierarquia de papéis na
// criação de usuários, com a mensagem exata exibida ao usuário.
type RoleAssignmentError struct {
	CreatorRole string
	NewRole     string
}

func (e *RoleAssignmentError) Error() string {
	if e.CreatorRole == entity.RoleManager {
		return "gerentes só podem criar usuários de recepção e vendas"
	}
	return "sem permissão para criar usuários"
}

// ValidateRoleAssignment aplica a regra de hierarquia na criação de usuários:
// admin atribui qualquer papel; gerente apenas reception e vendas; os demais
// papéis não criam usuários. Regra distinta da checagem de capacidade
// manage_users, que continua valendo na rota.
func ValidateRoleAssignment(creatorRole, newRole string) error {
	switch creatorRole {
	case entity.RoleAdmin:
		return nil
	case entity.RoleManager:
		if assignableByManager[newRole] {
			return nil
		}
		return &RoleAssignmentError{CreatorRole: creatorRole, NewRole: newRole}
	default:
		return &RoleAssignmentError{CreatorRole: creatorRole, NewRole: newRole}
	}
}
