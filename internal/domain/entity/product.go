package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityUnlimited é o valor sentinela de estoque ilimitado (serviços, planos).
// Produtos ilimitados nunca sofrem baixa de estoque.
const QuantityUnlimited = -1

// Product representa um produto ou serviço vendável.
type Product struct {
	ID          string
	Code        string // código único
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int // >= 0 finito; QuantityUnlimited para ilimitado
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Unlimited informa se o produto tem estoque ilimitado.
func (p *Product) Unlimited() bool {
	return p.Quantity == QuantityUnlimited
}
