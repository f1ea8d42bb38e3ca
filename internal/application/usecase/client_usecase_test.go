package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// ─── Fakes em memória ───────────────────────────────────────────────────────

type fakeClientRepo struct {
	byID map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: map[string]*entity.Client{}}
}

func (f *fakeClientRepo) Create(c *entity.Client) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) { return f.byID[id], nil }

func (f *fakeClientRepo) GetByCPF(cpf string) (*entity.Client, error) {
	for _, c := range f.byID {
		if c.CPF == cpf {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var list []*entity.Client
	for _, c := range f.byID {
		list = append(list, c)
	}
	return list, nil
}

func (f *fakeClientRepo) Update(c *entity.Client) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

// fakeBillLedger guarda cobranças e parcelas para exercitar a guarda
// referencial de exclusão: enquanto houver parcela pendente, o cliente ou
// produto referenciado não pode sair do cadastro.
type fakeBillLedger struct {
	bills        map[string]*entity.Bill
	installments map[string]*entity.Installment
}

func newFakeBillLedger() *fakeBillLedger {
	return &fakeBillLedger{
		bills:        map[string]*entity.Bill{},
		installments: map[string]*entity.Installment{},
	}
}

// addBill registra uma cobrança com n parcelas pendentes e devolve seus IDs.
func (f *fakeBillLedger) addBill(clientID, productID string, n int) (billID string, installmentIDs []string) {
	billID = "b-" + clientID + "-" + productID
	f.bills[billID] = &entity.Bill{
		ID:           billID,
		ClientID:     clientID,
		ProductID:    productID,
		TotalAmount:  decimal.NewFromInt(int64(n * 10)),
		Installments: n,
		Status:       entity.BillStatusCreated,
	}
	for i := 1; i <= n; i++ {
		id := billID + "-p" + string(rune('0'+i))
		f.installments[id] = &entity.Installment{
			ID:     id,
			BillID: billID,
			Number: i,
			Amount: decimal.NewFromInt(10),
		}
		installmentIDs = append(installmentIDs, id)
	}
	return billID, installmentIDs
}

func (f *fakeBillLedger) settle(installmentID string) {
	now := time.Now()
	ins := f.installments[installmentID]
	ins.Paid = true
	ins.PaidAt = &now
}

func (f *fakeBillLedger) Create(bill *entity.Bill, installments []*entity.Installment) error {
	f.bills[bill.ID] = bill
	for _, ins := range installments {
		f.installments[ins.ID] = ins
	}
	return nil
}

func (f *fakeBillLedger) GetByID(id string) (*entity.Bill, error) { return f.bills[id], nil }

func (f *fakeBillLedger) List(limit, offset int) ([]*entity.Bill, error) { return nil, nil }

func (f *fakeBillLedger) ListByCreator(string, int, int) ([]*entity.Bill, error) { return nil, nil }

func (f *fakeBillLedger) UpdateStatus(id, status string) error {
	if b, ok := f.bills[id]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBillLedger) GetInstallment(id string) (*entity.Installment, error) {
	return f.installments[id], nil
}

func (f *fakeBillLedger) ListInstallments(billID string) ([]*entity.Installment, error) {
	var list []*entity.Installment
	for _, ins := range f.installments {
		if ins.BillID == billID {
			list = append(list, ins)
		}
	}
	return list, nil
}

func (f *fakeBillLedger) ListPendingInstallments(repository.PendingFilter) ([]*entity.Installment, error) {
	return nil, nil
}

func (f *fakeBillLedger) MarkInstallmentPaid(id, paidBy string) (*entity.Installment, error) {
	ins, ok := f.installments[id]
	if !ok || ins.Paid {
		return nil, domain.ErrAlreadyPaid
	}
	f.settle(id)
	ins.PaidBy = paidBy
	return ins, nil
}

func (f *fakeBillLedger) CountInstallments(billID string) (paid, total int, err error) {
	for _, ins := range f.installments {
		if ins.BillID != billID {
			continue
		}
		total++
		if ins.Paid {
			paid++
		}
	}
	return paid, total, nil
}

func (f *fakeBillLedger) HasOpenBillsForClient(clientID string) (bool, error) {
	for _, ins := range f.installments {
		if !ins.Paid && f.bills[ins.BillID].ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBillLedger) HasOpenBillsForProduct(productID string) (bool, error) {
	for _, ins := range f.installments {
		if !ins.Paid && f.bills[ins.BillID].ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// ─── Exclusão: guarda referencial de cobranças ──────────────────────────────

func TestClientDelete_BloqueadoComParcelaPendente(t *testing.T) {
	clients := newFakeClientRepo()
	ledger := newFakeBillLedger()
	require.NoError(t, clients.Create(&entity.Client{ID: "c-1", Name: "Marcos Silva", CPF: "529.982.247-25"}))
	ledger.addBill("c-1", "", 2)

	uc := NewClientUseCase(clients, ledger, &fakeRecorder{})
	err := uc.Delete(adminActor(), "c-1")
	assert.ErrorIs(t, err, domain.ErrClientHasOpenBills)

	still, _ := clients.GetByID("c-1")
	assert.NotNil(t, still, "cliente com cobrança aberta permanece no cadastro")
}

func TestClientDelete_LiberadoAposQuitacaoTotal(t *testing.T) {
	clients := newFakeClientRepo()
	ledger := newFakeBillLedger()
	rec := &fakeRecorder{}
	require.NoError(t, clients.Create(&entity.Client{ID: "c-1", Name: "Marcos Silva", CPF: "529.982.247-25"}))
	_, parcelas := ledger.addBill("c-1", "", 2)

	uc := NewClientUseCase(clients, ledger, rec)

	// metade quitada ainda bloqueia
	ledger.settle(parcelas[0])
	err := uc.Delete(adminActor(), "c-1")
	require.ErrorIs(t, err, domain.ErrClientHasOpenBills)

	ledger.settle(parcelas[1])
	require.NoError(t, uc.Delete(adminActor(), "c-1"))

	gone, _ := clients.GetByID("c-1")
	assert.Nil(t, gone)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, entity.ActionClientDeleted, rec.entries[0].action)
}

func TestClientDelete_Inexistente(t *testing.T) {
	uc := NewClientUseCase(newFakeClientRepo(), newFakeBillLedger(), &fakeRecorder{})
	err := uc.Delete(adminActor(), "c-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
