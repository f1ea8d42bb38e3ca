// Package cashbox implementa as operações de caixa: entradas, saídas,
// vendas com baixa de estoque e os relatórios individuais de vendedores.
package cashbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// UseCase operações de caixa.
type UseCase struct {
	txnRepo     repository.TransactionRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	txRunner    TxRunner
	recorder    audit.Recorder
	loc         *time.Location
}

// NewUseCase constrói o caso de uso. loc nil cai em UTC.
func NewUseCase(
	txnRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	txRunner TxRunner,
	recorder audit.Recorder,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		txnRepo:     txnRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		txRunner:    txRunner,
		recorder:    recorder,
		loc:         loc,
	}
}

// RegisterTransaction registra uma entrada ou saída de caixa.
// pagamento_cliente não passa por aqui: só nasce do pagamento de parcelas.
func (uc *UseCase) RegisterTransaction(actor *entity.User, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Type != entity.TransactionEntrada && in.Type != entity.TransactionSaida {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Description == "" || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	txn := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Amount:        in.Amount,
		Description:   in.Description,
		PaymentMethod: in.PaymentMethod,
		UserID:        actor.ID,
		CreatedAt:     time.Now(),
	}
	if err := uc.txnRepo.Create(txn); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("%s de R$ %s: %s", txn.Type, txn.Amount.StringFixed(2), txn.Description)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionTransactionCreated, detail); err != nil {
		return nil, err
	}
	return ToTransactionResponse(txn), nil
}

// RegisterSale efetua uma venda: baixa atômica de estoque finito e entrada de
// caixa pelo valor total, tudo na mesma transação de banco. Duas vendas
// simultâneas do último item: exatamente uma ganha, a outra recebe conflito.
func (uc *UseCase) RegisterSale(ctx context.Context, actor *entity.User, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	if in.ClientID != "" {
		client, err := uc.clientRepo.GetByID(in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
	txn := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          entity.TransactionEntrada,
		Amount:        total,
		Description:   fmt.Sprintf("venda: %dx %s", in.Quantity, product.Name),
		PaymentMethod: in.PaymentMethod,
		ProductID:     product.ID,
		ClientID:      in.ClientID,
		UserID:        actor.ID,
		CreatedAt:     time.Now(),
	}

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		if err := productRepo.DecrementQuantity(product.ID, in.Quantity); err != nil {
			return err
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}
		return logRepo.Append(&entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			UserID:    actor.ID,
			Username:  actor.Username,
			Action:    entity.ActionSaleRegistered,
			Detail:    fmt.Sprintf("venda de %dx %s por R$ %s", in.Quantity, product.Name, total.StringFixed(2)),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{
		Transaction: *ToTransactionResponse(txn),
		TotalValue:  total,
		Quantity:    in.Quantity,
	}, nil
}

// List lista movimentações com filtros opcionais. Usuários do papel vendas
// enxergam apenas as próprias movimentações, sem exceção.
func (uc *UseCase) List(actor *entity.User, txType, dateStart, dateEnd string, limit, offset int) ([]*dto.TransactionResponse, error) {
	if txType != "" && !entity.ValidTransactionType(txType) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	filter := repository.TransactionFilter{
		Type:   txType,
		Limit:  limit,
		Offset: offset,
	}
	if actor.Role == entity.RoleVendas {
		filter.UserID = actor.ID
	}
	if dateStart != "" {
		t, err := time.ParseInLocation("2006-01-02", dateStart, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.DateStart = &t
	}
	if dateEnd != "" {
		t, err := time.ParseInLocation("2006-01-02", dateEnd, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateEnd = &end
	}
	list, err := uc.txnRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return out, nil
}

// MyReports devolve as vendas do próprio vendedor, opcionalmente limitadas a
// um mês/ano. O filtro por autor é fixo: nenhum registro de outro usuário
// aparece no resultado.
func (uc *UseCase) MyReports(actor *entity.User, month, year int) (*dto.MyReportsResponse, error) {
	filter := repository.TransactionFilter{
		Type:   entity.TransactionEntrada,
		UserID: actor.ID,
		Limit:  1000,
	}
	if month != 0 || year != 0 {
		now := time.Now().In(uc.loc)
		if year == 0 {
			year = now.Year()
		}
		if month < 1 || month > 12 {
			return nil, domain.ErrInvalidInput
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.DateStart = &start
		filter.DateEnd = &end
	}
	list, err := uc.txnRepo.List(filter)
	if err != nil {
		return nil, err
	}
	sales := make([]dto.TransactionResponse, 0, len(list))
	total := decimal.Zero
	for _, t := range list {
		if t.ProductID == "" {
			continue // entrada avulsa de caixa, não é venda
		}
		sales = append(sales, *ToTransactionResponse(t))
		total = total.Add(t.Amount)
	}
	return &dto.MyReportsResponse{
		Sales:      sales,
		TotalSales: len(sales),
		TotalValue: total,
	}, nil
}

// ToTransactionResponse converte a entidade em DTO.
func ToTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		ProductID:     t.ProductID,
		ClientID:      t.ClientID,
		UserID:        t.UserID,
		CreatedAt:     t.CreatedAt,
	}
}
