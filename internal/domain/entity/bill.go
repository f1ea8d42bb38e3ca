package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de uma cobrança (derivados das parcelas pagas).
const (
	BillStatusCreated       = "created"        // nenhuma parcela paga
	BillStatusPartiallyPaid = "partially_paid" // algumas parcelas pagas
	BillStatusSettled       = "settled"        // todas as parcelas pagas
)

// Bill representa uma cobrança parcelada de um cliente.
// A soma dos valores das parcelas é sempre exatamente igual a TotalAmount.
type Bill struct {
	ID           string
	ClientID     string
	ProductID    string // opcional: cobrança originada de um produto/plano
	Description  string
	TotalAmount  decimal.Decimal
	Installments int
	Status       string // created, partially_paid, settled
	CreatedBy    string
	CreatedAt    time.Time
}

// Installment é uma parcela de uma cobrança. Pagamento é integral: ou a
// parcela está pendente, ou está paga pelo valor devido.
type Installment struct {
	ID        string
	BillID    string
	Number    int // sequência 1..N dentro da cobrança
	Amount    decimal.Decimal
	DueDate   time.Time
	Paid      bool
	PaidAt    *time.Time
	PaidBy    string
	CreatedAt time.Time
}

// BillStatusFor deriva o estado da cobrança a partir do número de parcelas pagas.
func BillStatusFor(paid, total int) string {
	switch {
	case paid == 0:
		return BillStatusCreated
	case paid < total:
		return BillStatusPartiallyPaid
	default:
		return BillStatusSettled
	}
}
