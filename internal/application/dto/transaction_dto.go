package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest registro de entrada ou saída de caixa.
type CreateTransactionRequest struct {
	Type          string          `json:"type"` // entrada | saida
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
}

// CreateSaleRequest venda de produto (baixa de estoque + entrada de caixa).
type CreateSaleRequest struct {
	ClientID      string `json:"client_id"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

// TransactionResponse movimentação exposta pela API.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	ProductID     string          `json:"product_id,omitempty"`
	ClientID      string          `json:"client_id,omitempty"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleResponse resultado de uma venda.
type SaleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	TotalValue  decimal.Decimal     `json:"total_value"`
	Quantity    int                 `json:"quantity"`
}

// MyReportsResponse relatório individual do vendedor.
type MyReportsResponse struct {
	Sales      []TransactionResponse `json:"sales"`
	TotalSales int                   `json:"total_sales"`
	TotalValue decimal.Decimal       `json:"total_value"`
}
