package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação do caixa.
const (
	TransactionEntrada          = "entrada"           // entrada de caixa
	TransactionSaida            = "saida"             // saída de caixa
	TransactionPagamentoCliente = "pagamento_cliente" // pagamento de parcela de cobrança
)

// Formas de pagamento aceitas.
const (
	PaymentDinheiro = "dinheiro"
	PaymentCartao   = "cartao"
	PaymentPix      = "pix"
	PaymentBoleto   = "boleto"
)

// ValidTransactionType informa se o tipo pertence à enumeração fixa.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionEntrada, TransactionSaida, TransactionPagamentoCliente:
		return true
	}
	return false
}

// ValidPaymentMethod informa se a forma de pagamento é aceita.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentDinheiro, PaymentCartao, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// Transaction é uma movimentação de caixa. Imutável após criada: é a base do
// cálculo de saldo, portanto nunca sofre update nem delete.
type Transaction struct {
	ID            string
	Type          string // entrada, saida, pagamento_cliente
	Amount        decimal.Decimal
	Description   string
	PaymentMethod string
	ProductID     string // opcional: venda de produto ou parcela de plano
	ClientID      string // opcional: pagamento_cliente e vendas
	UserID        string // autor da movimentação
	CreatedAt     time.Time
}
