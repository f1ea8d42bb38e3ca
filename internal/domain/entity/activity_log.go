package entity

import "time"

// Ações registradas na trilha de auditoria.
const (
	ActionUserCreated        = "user_created"
	ActionUserUpdated        = "user_updated"
	ActionUserDeleted        = "user_deleted"
	ActionUserPermissions    = "user_permissions_updated"
	ActionClientCreated      = "client_created"
	ActionClientUpdated      = "client_updated"
	ActionClientDeleted      = "client_deleted"
	ActionProductCreated     = "product_created"
	ActionProductUpdated     = "product_updated"
	ActionProductDeleted     = "product_deleted"
	ActionTransactionCreated = "transaction_created"
	ActionSaleRegistered     = "sale_registered"
	ActionBillCreated        = "bill_created"
	ActionInstallmentPaid    = "installment_paid"
	ActionPasswordChanged    = "password_changed"
)

// ActivityLogEntry é um registro imutável da trilha de auditoria.
// Entradas nunca são alteradas nem removidas.
type ActivityLogEntry struct {
	ID        string
	UserID    string
	Username  string
	Action    string
	Detail    string
	CreatedAt time.Time
}
