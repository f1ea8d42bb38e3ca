package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas read-only do dashboard. Agrega direto sobre a tabela de
// movimentações; nada é materializado.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository constrói o adaptador de estatísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// SumByType soma os valores das movimentações do tipo dado em todo o histórico.
func (r *StatsRepo) SumByType(ctx context.Context, txType string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, txType).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions by type: %w", err)
	}
	return sum, nil
}

// CountInRange conta as movimentações no intervalo [start, end].
func (r *StatsRepo) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE created_at >= $1 AND created_at <= $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions in range: %w", err)
	}
	return count, nil
}

// Recent devolve as movimentações mais recentes.
func (r *StatsRepo) Recent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	query := `
		SELECT id, type, amount, description, payment_method, COALESCE(product_id, ''), COALESCE(client_id, ''), user_id, created_at
		FROM transactions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Description, &t.PaymentMethod,
			&t.ProductID, &t.ClientID, &t.UserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
