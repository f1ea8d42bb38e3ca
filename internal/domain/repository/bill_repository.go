package repository

import "github.com/rmacedo/caixa-api/internal/domain/entity"

// PendingFilter filtros opcionais para parcelas pendentes.
type PendingFilter struct {
	Month    int // 1..12; 0 ignora
	Year     int // 0 ignora
	ClientID string
}

// BillRepository define o porto de persistência para Bill e Installment.
type BillRepository interface {
	Create(bill *entity.Bill, installments []*entity.Installment) error
	GetByID(id string) (*entity.Bill, error)
	List(limit, offset int) ([]*entity.Bill, error)
	ListByCreator(createdBy string, limit, offset int) ([]*entity.Bill, error)
	UpdateStatus(id, status string) error

	GetInstallment(id string) (*entity.Installment, error)
	ListInstallments(billID string) ([]*entity.Installment, error)
	// ListPendingInstallments devolve parcelas pendentes ordenadas por
	// vencimento ascendente, aplicando os filtros conjuntivamente.
	ListPendingInstallments(filter PendingFilter) ([]*entity.Installment, error)
	// MarkInstallmentPaid marca a parcela como paga de forma atômica
	// (compare-and-set: só tem efeito se ainda estiver pendente). Retorna
	// domain.ErrAlreadyPaid se outra requisição venceu a corrida.
	MarkInstallmentPaid(id, paidBy string) (*entity.Installment, error)
	// CountInstallments devolve (pagas, total) da cobrança para derivar o estado.
	CountInstallments(billID string) (paid, total int, err error)

	// HasOpenBillsForClient informa se o cliente referencia alguma cobrança
	// com parcela pendente (guarda referencial de exclusão).
	HasOpenBillsForClient(clientID string) (bool, error)
	// HasOpenBillsForProduct idem para produto.
	HasOpenBillsForProduct(productID string) (bool, error)
}
