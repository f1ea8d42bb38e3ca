package repository

import (
	"time"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// TransactionFilter filtros opcionais e conjuntivos para listagem de movimentações.
// UserID preenchido restringe ao autor (isolamento do papel vendas).
type TransactionFilter struct {
	Type      string
	UserID    string
	ClientID  string
	DateStart *time.Time
	DateEnd   *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository define o porto de persistência para Transaction.
// Movimentações são imutáveis: não há Update nem Delete.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	List(filter TransactionFilter) ([]*entity.Transaction, error)
}
