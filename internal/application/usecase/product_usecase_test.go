package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// ─── Fakes em memória ───────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.byID[id], nil }

func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range f.byID {
		list = append(list, p)
	}
	return list, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeProductRepo) DecrementQuantity(string, int) error { return nil }

func planoMensal() *entity.Product {
	return &entity.Product{
		ID:       "p-1",
		Code:     "PLANO-01",
		Name:     "Plano mensal",
		Price:    decimal.NewFromInt(80),
		Quantity: entity.QuantityUnlimited,
		Active:   true,
	}
}

// ─── Exclusão: guarda referencial de cobranças ──────────────────────────────

func TestProductDelete_BloqueadoComParcelaPendente(t *testing.T) {
	products := newFakeProductRepo()
	ledger := newFakeBillLedger()
	require.NoError(t, products.Create(planoMensal()))
	ledger.addBill("c-1", "p-1", 3)

	uc := NewProductUseCase(products, ledger, &fakeRecorder{})
	err := uc.Delete(adminActor(), "p-1")
	assert.ErrorIs(t, err, domain.ErrProductHasOpenBills)

	still, _ := products.GetByID("p-1")
	assert.NotNil(t, still, "produto com cobrança aberta permanece no cadastro")
}

func TestProductDelete_LiberadoAposQuitacaoTotal(t *testing.T) {
	products := newFakeProductRepo()
	ledger := newFakeBillLedger()
	rec := &fakeRecorder{}
	require.NoError(t, products.Create(planoMensal()))
	_, parcelas := ledger.addBill("c-1", "p-1", 2)

	uc := NewProductUseCase(products, ledger, rec)
	for _, id := range parcelas {
		ledger.settle(id)
	}
	require.NoError(t, uc.Delete(adminActor(), "p-1"))

	gone, _ := products.GetByID("p-1")
	assert.Nil(t, gone)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, entity.ActionProductDeleted, rec.entries[0].action)
}

func TestProductDelete_CobrancaDeOutroProdutoNaoBloqueia(t *testing.T) {
	products := newFakeProductRepo()
	ledger := newFakeBillLedger()
	require.NoError(t, products.Create(planoMensal()))
	ledger.addBill("c-1", "p-outro", 1)

	uc := NewProductUseCase(products, ledger, &fakeRecorder{})
	assert.NoError(t, uc.Delete(adminActor(), "p-1"))
}
