// Package billing implementa o ciclo de vida de cobranças parceladas:
// criação, consulta de pendências, pagamento de parcelas e emissão de carnê.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/caixa-api/internal/application/cashbox"
	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	domainbilling "github.com/rmacedo/caixa-api/internal/domain/billing"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// UseCase operações de cobrança.
type UseCase struct {
	billRepo    repository.BillRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	txRunner    TxRunner
	carne       CarneGenerator
	loc         *time.Location
}

// NewUseCase constrói o caso de uso. loc nil cai em UTC.
func NewUseCase(
	billRepo repository.BillRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	carne CarneGenerator,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		billRepo:    billRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		carne:       carne,
		loc:         loc,
	}
}

// CreateBill cria uma cobrança parcelada. O total é dividido em parcelas de
// duas casas decimais cuja soma é exatamente o total; a última parcela absorve
// a diferença de arredondamento. Vencimentos mensais a partir do mês seguinte.
func (uc *UseCase) CreateBill(ctx context.Context, actor *entity.User, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.ClientID == "" || in.Installments < 1 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	total := in.TotalAmount
	description := in.Description
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		if total.IsZero() {
			// mensalidade: preço do produto por parcela
			total = product.Price.Mul(decimal.NewFromInt(int64(in.Installments)))
		}
		if description == "" {
			description = product.Name
		}
	}

	amounts, err := domainbilling.SplitAmount(total, in.Installments)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().In(uc.loc)
	bill := &entity.Bill{
		ID:           uuid.New().String(),
		ClientID:     in.ClientID,
		ProductID:    in.ProductID,
		Description:  description,
		TotalAmount:  total,
		Installments: in.Installments,
		Status:       entity.BillStatusCreated,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
	}
	installments := make([]*entity.Installment, 0, in.Installments)
	for i, amount := range amounts {
		installments = append(installments, &entity.Installment{
			ID:        uuid.New().String(),
			BillID:    bill.ID,
			Number:    i + 1,
			Amount:    amount,
			DueDate:   firstDueDate(now, uc.loc).AddDate(0, i, 0),
			CreatedAt: now,
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		_ repository.TransactionRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		if err := billRepo.Create(bill, installments); err != nil {
			return err
		}
		return logRepo.Append(&entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			UserID:    actor.ID,
			Username:  actor.Username,
			Action:    entity.ActionBillCreated,
			Detail:    fmt.Sprintf("cobrança de R$ %s em %d parcela(s) para %s", total.StringFixed(2), in.Installments, client.Name),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// PayInstallment quita uma parcela integralmente. A marcação é atômica: se
// duas requisições disputarem a mesma parcela, só a primeira registra o
// pagamento e a entrada de caixa; a segunda recebe ErrAlreadyPaid.
func (uc *UseCase) PayInstallment(ctx context.Context, actor *entity.User, installmentID, paymentMethod string) (*dto.PayInstallmentResponse, error) {
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.billRepo.GetInstallment(installmentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	bill, err := uc.billRepo.GetByID(current.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}

	var (
		paid   *entity.Installment
		txn    *entity.Transaction
		status string
	)
	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		txnRepo repository.TransactionRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		var err error
		paid, err = billRepo.MarkInstallmentPaid(installmentID, actor.ID)
		if err != nil {
			return err
		}
		txn = &entity.Transaction{
			ID:            uuid.New().String(),
			Type:          entity.TransactionPagamentoCliente,
			Amount:        paid.Amount,
			Description:   fmt.Sprintf("pagamento da parcela %d/%d: %s", paid.Number, bill.Installments, bill.Description),
			PaymentMethod: paymentMethod,
			ProductID:     bill.ProductID,
			ClientID:      bill.ClientID,
			UserID:        actor.ID,
			CreatedAt:     time.Now(),
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}
		paidCount, total, err := billRepo.CountInstallments(bill.ID)
		if err != nil {
			return err
		}
		status = entity.BillStatusFor(paidCount, total)
		if status != bill.Status {
			if err := billRepo.UpdateStatus(bill.ID, status); err != nil {
				return err
			}
		}
		return logRepo.Append(&entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			UserID:    actor.ID,
			Username:  actor.Username,
			Action:    entity.ActionInstallmentPaid,
			Detail:    fmt.Sprintf("parcela %d/%d de R$ %s recebida (%s)", paid.Number, bill.Installments, paid.Amount.StringFixed(2), paymentMethod),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.PayInstallmentResponse{
		Installment: *toInstallmentResponse(paid),
		Transaction: *cashbox.ToTransactionResponse(txn),
		BillStatus:  status,
	}, nil
}

// ListBills lista cobranças. Usuários do papel vendas só enxergam as que
// eles mesmos criaram.
func (uc *UseCase) ListBills(actor *entity.User, limit, offset int) ([]*dto.BillResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var (
		bills []*entity.Bill
		err   error
	)
	if actor.Role == entity.RoleVendas {
		bills, err = uc.billRepo.ListByCreator(actor.ID, limit, offset)
	} else {
		bills, err = uc.billRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b))
	}
	return out, nil
}

// GetBill devolve a cobrança com suas parcelas.
func (uc *UseCase) GetBill(actor *entity.User, id string) (*dto.BillResponse, []*dto.InstallmentResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleVendas && bill.CreatedBy != actor.ID {
		return nil, nil, domain.ErrNotFound
	}
	installments, err := uc.billRepo.ListInstallments(id)
	if err != nil {
		return nil, nil, err
	}
	out := make([]*dto.InstallmentResponse, 0, len(installments))
	for _, ins := range installments {
		out = append(out, toInstallmentResponse(ins))
	}
	return toBillResponse(bill), out, nil
}

// ListPending lista parcelas pendentes ordenadas por vencimento, com filtros
// opcionais de mês/ano de vencimento e cliente.
func (uc *UseCase) ListPending(month, year int, clientID string) ([]*dto.InstallmentResponse, error) {
	if month < 0 || month > 12 || year < 0 {
		return nil, domain.ErrInvalidInput
	}
	if month != 0 && year == 0 {
		year = time.Now().In(uc.loc).Year()
	}
	list, err := uc.billRepo.ListPendingInstallments(repository.PendingFilter{
		Month:    month,
		Year:     year,
		ClientID: clientID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InstallmentResponse, 0, len(list))
	for _, ins := range list {
		out = append(out, toInstallmentResponse(ins))
	}
	return out, nil
}

// Carne gera o carnê em PDF da cobrança, com uma ficha por parcela.
func (uc *UseCase) Carne(actor *entity.User, billID string) ([]byte, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleVendas && bill.CreatedBy != actor.ID {
		return nil, domain.ErrNotFound
	}
	installments, err := uc.billRepo.ListInstallments(billID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(bill.ClientID)
	if err != nil {
		return nil, err
	}
	data := &CarneData{
		Bill:         bill,
		Installments: installments,
	}
	if client != nil {
		data.ClientName = client.Name
		data.ClientCPF = client.CPF
	}
	if bill.ProductID != "" {
		if product, err := uc.productRepo.GetByID(bill.ProductID); err == nil && product != nil {
			data.ProductName = product.Name
		}
	}
	return uc.carne.Generate(data)
}

// firstDueDate devolve o primeiro vencimento: mesmo dia do mês seguinte.
func firstDueDate(now time.Time, loc *time.Location) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 1, 0)
}

func toBillResponse(b *entity.Bill) *dto.BillResponse {
	return &dto.BillResponse{
		ID:           b.ID,
		ClientID:     b.ClientID,
		ProductID:    b.ProductID,
		Description:  b.Description,
		TotalAmount:  b.TotalAmount,
		Installments: b.Installments,
		Status:       b.Status,
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
	}
}

func toInstallmentResponse(i *entity.Installment) *dto.InstallmentResponse {
	return &dto.InstallmentResponse{
		ID:      i.ID,
		BillID:  i.BillID,
		Number:  i.Number,
		Amount:  i.Amount,
		DueDate: i.DueDate,
		Paid:    i.Paid,
		PaidAt:  i.PaidAt,
	}
}
