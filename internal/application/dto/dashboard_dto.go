package dto

import "github.com/shopspring/decimal"

// DashboardSummary agregados do caixa. Sempre derivados das movimentações,
// nunca armazenados.
type DashboardSummary struct {
	TotalEntrada      decimal.Decimal       `json:"total_entrada"`
	TotalSaida        decimal.Decimal       `json:"total_saida"`
	Saldo             decimal.Decimal       `json:"saldo"`
	TodayTransactions int                   `json:"today_transactions"`
	Recent            []TransactionResponse `json:"recent_transactions"`
}
