// Package analytics contém os casos de uso de leitura do dashboard do caixa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/caixa-api/internal/application/cashbox"
	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

const dashboardRecentLimit = 5 // movimentações no widget de recentes

// DashboardUseCase monta o resumo financeiro do caixa.
//
// Fonte de dados: StatsRepository (consultas read-only). Os agregados são
// calculados sob demanda; nada é materializado.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	loc       *time.Location
}

// NewDashboardUseCase constrói o caso de uso. loc define o fuso do negócio
// para o recorte de "hoje"; nil cai em UTC.
func NewDashboardUseCase(statsRepo repository.StatsRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{statsRepo: statsRepo, loc: loc}
}

// GetSummary constrói o DashboardSummary.
//
// Quatro consultas em paralelo:
//  1. SumByType(entrada) + SumByType(pagamento_cliente) → TotalEntrada
//  2. SumByType(saida)                                  → TotalSaida
//  3. CountInRange(hoje)                                → TodayTransactions
//  4. Recent(5)                                         → Recent
//
// Saldo = TotalEntrada - TotalSaida.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := time.Now().In(uc.loc)

	// Hoje no fuso do negócio: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type sumResult struct {
		sum decimal.Decimal
		err error
	}
	type countResult struct {
		count int
		err   error
	}
	type recentResult struct {
		list []*entity.Transaction
		err  error
	}

	entradaCh := make(chan sumResult, 1)
	saidaCh := make(chan sumResult, 1)
	todayCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		entrada, err := uc.statsRepo.SumByType(ctx, entity.TransactionEntrada)
		if err != nil {
			entradaCh <- sumResult{err: err}
			return
		}
		pagamentos, err := uc.statsRepo.SumByType(ctx, entity.TransactionPagamentoCliente)
		if err != nil {
			entradaCh <- sumResult{err: err}
			return
		}
		entradaCh <- sumResult{sum: entrada.Add(pagamentos)}
	}()
	go func() {
		sum, err := uc.statsRepo.SumByType(ctx, entity.TransactionSaida)
		saidaCh <- sumResult{sum, err}
	}()
	go func() {
		count, err := uc.statsRepo.CountInRange(ctx, todayStart, todayEnd)
		todayCh <- countResult{count, err}
	}()
	go func() {
		list, err := uc.statsRepo.Recent(ctx, dashboardRecentLimit)
		recentCh <- recentResult{list, err}
	}()

	entrada := <-entradaCh
	saida := <-saidaCh
	today := <-todayCh
	recent := <-recentCh

	if entrada.err != nil {
		return nil, fmt.Errorf("dashboard: total de entradas: %w", entrada.err)
	}
	if saida.err != nil {
		return nil, fmt.Errorf("dashboard: total de saídas: %w", saida.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: movimentações de hoje: %w", today.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimentações recentes: %w", recent.err)
	}

	recentDTOs := make([]dto.TransactionResponse, 0, len(recent.list))
	for _, t := range recent.list {
		recentDTOs = append(recentDTOs, *cashbox.ToTransactionResponse(t))
	}

	return &dto.DashboardSummary{
		TotalEntrada:      entrada.sum.Round(2),
		TotalSaida:        saida.sum.Round(2),
		Saldo:             entrada.sum.Sub(saida.sum).Round(2),
		TodayTransactions: today.count,
		Recent:            recentDTOs,
	}, nil
}
