package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementação do porto BillRepository sobre PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository constrói o adaptador de cobranças. Passar pool ou tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste a cobrança e todas as suas parcelas.
func (r *BillRepo) Create(bill *entity.Bill, installments []*entity.Installment) error {
	ctx := context.Background()
	query := `
		INSERT INTO bills (id, client_id, product_id, description, total_amount, installments, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.ClientID, nullIfEmpty(bill.ProductID), bill.Description,
		bill.TotalAmount, bill.Installments, bill.Status, bill.CreatedBy, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	insQuery := `
		INSERT INTO installments (id, bill_id, number, amount, due_date, paid, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`
	for _, ins := range installments {
		if _, err := r.q.Exec(ctx, insQuery,
			ins.ID, ins.BillID, ins.Number, ins.Amount, ins.DueDate, ins.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert installment %d: %w", ins.Number, err)
		}
	}
	return nil
}

// GetByID obtém uma cobrança por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `
		SELECT id, client_id, COALESCE(product_id, ''), description, total_amount, installments, status, created_by, created_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ClientID, &b.ProductID, &b.Description, &b.TotalAmount,
		&b.Installments, &b.Status, &b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// List lista cobranças com paginação, da mais recente para a mais antiga.
func (r *BillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	return r.list(`ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByCreator lista apenas as cobranças criadas pelo usuário dado.
func (r *BillRepo) ListByCreator(createdBy string, limit, offset int) ([]*entity.Bill, error) {
	return r.list(`WHERE created_by = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset, createdBy)
}

func (r *BillRepo) list(tail string, args ...any) ([]*entity.Bill, error) {
	query := `
		SELECT id, client_id, COALESCE(product_id, ''), description, total_amount, installments, status, created_by, created_at
		FROM bills ` + tail
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.ClientID, &b.ProductID, &b.Description, &b.TotalAmount,
			&b.Installments, &b.Status, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateStatus atualiza o estado derivado da cobrança.
func (r *BillRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE bills SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	return nil
}

// GetInstallment obtém uma parcela por ID.
func (r *BillRepo) GetInstallment(id string) (*entity.Installment, error) {
	query := `
		SELECT id, bill_id, number, amount, due_date, paid, paid_at, COALESCE(paid_by, ''), created_at
		FROM installments WHERE id = $1`
	var ins entity.Installment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ins.ID, &ins.BillID, &ins.Number, &ins.Amount, &ins.DueDate,
		&ins.Paid, &ins.PaidAt, &ins.PaidBy, &ins.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &ins, nil
}

// ListInstallments lista as parcelas da cobrança em ordem de sequência.
func (r *BillRepo) ListInstallments(billID string) ([]*entity.Installment, error) {
	query := `
		SELECT id, bill_id, number, amount, due_date, paid, paid_at, COALESCE(paid_by, ''), created_at
		FROM installments WHERE bill_id = $1 ORDER BY number ASC`
	return r.listInstallments(query, billID)
}

// ListPendingInstallments lista parcelas pendentes por vencimento ascendente,
// aplicando os filtros conjuntivamente.
func (r *BillRepo) ListPendingInstallments(filter repository.PendingFilter) ([]*entity.Installment, error) {
	conds := []string{"i.paid = false"}
	var args []any
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conds = append(conds, fmt.Sprintf("EXTRACT(MONTH FROM i.due_date) = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("EXTRACT(YEAR FROM i.due_date) = $%d", len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conds = append(conds, fmt.Sprintf("b.client_id = $%d", len(args)))
	}
	query := `
		SELECT i.id, i.bill_id, i.number, i.amount, i.due_date, i.paid, i.paid_at, COALESCE(i.paid_by, ''), i.created_at
		FROM installments i
		JOIN bills b ON b.id = i.bill_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY i.due_date ASC, i.number ASC`
	return r.listInstallments(query, args...)
}

func (r *BillRepo) listInstallments(query string, args ...any) ([]*entity.Installment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		var ins entity.Installment
		if err := rows.Scan(&ins.ID, &ins.BillID, &ins.Number, &ins.Amount, &ins.DueDate,
			&ins.Paid, &ins.PaidAt, &ins.PaidBy, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &ins)
	}
	return list, rows.Err()
}

// MarkInstallmentPaid marca a parcela como paga de forma atômica: o UPDATE só
// casa se a parcela ainda estiver pendente. Zero linhas significa que outra
// requisição pagou primeiro (ou a parcela não existe).
func (r *BillRepo) MarkInstallmentPaid(id, paidBy string) (*entity.Installment, error) {
	query := `
		UPDATE installments
		SET paid = true, paid_at = NOW(), paid_by = $2
		WHERE id = $1 AND paid = false
		RETURNING id, bill_id, number, amount, due_date, paid, paid_at, paid_by, created_at`
	var ins entity.Installment
	err := r.q.QueryRow(context.Background(), query, id, paidBy).Scan(
		&ins.ID, &ins.BillID, &ins.Number, &ins.Amount, &ins.DueDate,
		&ins.Paid, &ins.PaidAt, &ins.PaidBy, &ins.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyPaid
		}
		return nil, fmt.Errorf("mark installment paid: %w", err)
	}
	return &ins, nil
}

// CountInstallments devolve (pagas, total) da cobrança.
func (r *BillRepo) CountInstallments(billID string) (paid, total int, err error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE paid), COUNT(*)
		FROM installments WHERE bill_id = $1`
	if err := r.q.QueryRow(context.Background(), query, billID).Scan(&paid, &total); err != nil {
		return 0, 0, fmt.Errorf("count installments: %w", err)
	}
	return paid, total, nil
}

// HasOpenBillsForClient informa se o cliente tem cobrança com parcela pendente.
func (r *BillRepo) HasOpenBillsForClient(clientID string) (bool, error) {
	return r.hasOpen(`b.client_id = $1`, clientID)
}

// HasOpenBillsForProduct idem para produto.
func (r *BillRepo) HasOpenBillsForProduct(productID string) (bool, error) {
	return r.hasOpen(`b.product_id = $1`, productID)
}

func (r *BillRepo) hasOpen(cond string, arg any) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bills b
			JOIN installments i ON i.bill_id = b.id
			WHERE ` + cond + ` AND i.paid = false
		)`
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("check open bills: %w", err)
	}
	return ok, nil
}
