package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// ─── Fake do repositório de estatísticas ────────────────────────────────────

type fakeStatsRepo struct {
	sums   map[string]decimal.Decimal
	count  int
	recent []*entity.Transaction
	err    error
}

func (f *fakeStatsRepo) SumByType(_ context.Context, txType string) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.sums[txType], nil
}

func (f *fakeStatsRepo) CountInRange(_ context.Context, _, _ time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeStatsRepo) Recent(_ context.Context, limit int) ([]*entity.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// ─── Testes ─────────────────────────────────────────────────────────────────

func TestGetSummary_SaldoIncluiPagamentosDeCliente(t *testing.T) {
	repo := &fakeStatsRepo{
		sums: map[string]decimal.Decimal{
			entity.TransactionEntrada:          decimal.NewFromFloat(100.00),
			entity.TransactionSaida:            decimal.NewFromFloat(30.00),
			entity.TransactionPagamentoCliente: decimal.NewFromFloat(20.00),
		},
		count: 3,
		recent: []*entity.Transaction{
			{ID: "t1", Type: entity.TransactionEntrada, Amount: decimal.NewFromFloat(50)},
		},
	}
	uc := NewDashboardUseCase(repo, time.UTC)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	// pagamento_cliente soma ao lado das entradas
	assert.True(t, summary.TotalEntrada.Equal(decimal.NewFromFloat(120.00)),
		"total entrada = %s", summary.TotalEntrada)
	assert.True(t, summary.TotalSaida.Equal(decimal.NewFromFloat(30.00)))
	assert.True(t, summary.Saldo.Equal(decimal.NewFromFloat(90.00)),
		"saldo = %s", summary.Saldo)
	assert.Equal(t, 3, summary.TodayTransactions)
	require.Len(t, summary.Recent, 1)
	assert.Equal(t, "t1", summary.Recent[0].ID)
}

func TestGetSummary_CaixaVazio(t *testing.T) {
	uc := NewDashboardUseCase(&fakeStatsRepo{sums: map[string]decimal.Decimal{}}, time.UTC)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.TotalEntrada.IsZero())
	assert.True(t, summary.TotalSaida.IsZero())
	assert.True(t, summary.Saldo.IsZero())
	assert.Equal(t, 0, summary.TodayTransactions)
	assert.Empty(t, summary.Recent)
}

func TestGetSummary_PropagaErroDoRepositorio(t *testing.T) {
	uc := NewDashboardUseCase(&fakeStatsRepo{err: errors.New("conexão caiu")}, time.UTC)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}
