package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest criação de cobrança parcelada.
// Se ProductID for informado e TotalAmount for zero, o total é derivado do
// preço do produto multiplicado pelo número de parcelas (mensalidades).
type CreateBillRequest struct {
	ClientID     string          `json:"client_id"`
	ProductID    string          `json:"product_id"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Installments int             `json:"installments"`
}

// BillResponse cobrança exposta pela API.
type BillResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	ProductID    string          `json:"product_id,omitempty"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Installments int             `json:"installments"`
	Status       string          `json:"status"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// InstallmentResponse parcela exposta pela API.
type InstallmentResponse struct {
	ID      string          `json:"id"`
	BillID  string          `json:"bill_id"`
	Number  int             `json:"installment_number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Paid    bool            `json:"paid"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// PayInstallmentResponse resultado do pagamento de uma parcela.
type PayInstallmentResponse struct {
	Installment InstallmentResponse `json:"installment"`
	Transaction TransactionResponse `json:"transaction"`
	BillStatus  string              `json:"bill_status"`
}
