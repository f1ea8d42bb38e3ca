package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// StatsRepository define as consultas de leitura do dashboard do caixa.
// As implementações são read-only; os agregados nunca são armazenados.
type StatsRepository interface {
	// SumByType devolve a soma de amounts das movimentações do tipo dado em
	// todo o histórico. COALESCE garante zero quando não há movimentações.
	SumByType(ctx context.Context, txType string) (decimal.Decimal, error)

	// CountInRange conta as movimentações no intervalo [start, end].
	CountInRange(ctx context.Context, start, end time.Time) (int, error)

	// Recent devolve as movimentações mais recentes, da mais nova para a mais antiga.
	Recent(ctx context.Context, limit int) ([]*entity.Transaction, error)
}
