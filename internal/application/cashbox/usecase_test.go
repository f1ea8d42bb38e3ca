package cashbox

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// ─── Fakes em memória ───────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (m *memProductRepo) Create(*entity.Product) error { return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (m *memProductRepo) List(int, int) ([]*entity.Product, error)  { return nil, nil }
func (m *memProductRepo) Update(*entity.Product) error              { return nil }
func (m *memProductRepo) Delete(string) error                       { return nil }

// DecrementQuantity reproduz o compare-and-set do banco.
func (m *memProductRepo) DecrementQuantity(id string, qty int) error {
	p, ok := m.products[id]
	if !ok {
		return domain.ErrInsufficientStock
	}
	if p.Unlimited() {
		return nil
	}
	if p.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}

type memClientRepo struct {
	clients map[string]*entity.Client
}

func (m *memClientRepo) Create(*entity.Client) error               { return nil }
func (m *memClientRepo) GetByID(id string) (*entity.Client, error) { return m.clients[id], nil }
func (m *memClientRepo) GetByCPF(string) (*entity.Client, error)   { return nil, nil }
func (m *memClientRepo) List(int, int) ([]*entity.Client, error)   { return nil, nil }
func (m *memClientRepo) Update(*entity.Client) error               { return nil }
func (m *memClientRepo) Delete(string) error                       { return nil }

type memTxnRepo struct {
	created []*entity.Transaction
}

func (m *memTxnRepo) Create(t *entity.Transaction) error {
	m.created = append(m.created, t)
	return nil
}

func (m *memTxnRepo) GetByID(string) (*entity.Transaction, error) { return nil, nil }

// List aplica os filtros do mesmo jeito conjuntivo do adaptador real.
func (m *memTxnRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for _, t := range m.created {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.DateStart != nil && t.CreatedAt.Before(*filter.DateStart) {
			continue
		}
		if filter.DateEnd != nil && t.CreatedAt.After(*filter.DateEnd) {
			continue
		}
		list = append(list, t)
	}
	return list, nil
}

type memLogRepo struct {
	entries []*entity.ActivityLogEntry
}

func (m *memLogRepo) Append(e *entity.ActivityLogEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memLogRepo) Query(repository.ActivityLogFilter) ([]*entity.ActivityLogEntry, error) {
	return m.entries, nil
}

func (m *memLogRepo) ListUsernames() ([]string, error) { return nil, nil }

// saleRunner executa o callback direto; se algum passo falhar, desfaz o
// estoque como uma transação de banco faria.
type saleRunner struct {
	productRepo *memProductRepo
	txnRepo     *memTxnRepo
	logRepo     *memLogRepo
}

func (r *saleRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	txnRepo repository.TransactionRepository,
	logRepo repository.ActivityLogRepository,
) error) error {
	snapshot := map[string]int{}
	for id, p := range r.productRepo.products {
		snapshot[id] = p.Quantity
	}
	if err := fn(r.productRepo, r.txnRepo, r.logRepo); err != nil {
		for id, q := range snapshot {
			r.productRepo.products[id].Quantity = q
		}
		return err
	}
	return nil
}

type fakeRec struct {
	actions []string
}

func (f *fakeRec) Record(_, _, action, _ string) error {
	f.actions = append(f.actions, action)
	return nil
}

type fixture struct {
	uc          *UseCase
	productRepo *memProductRepo
	txnRepo     *memTxnRepo
	logRepo     *memLogRepo
	rec         *fakeRec
}

func newFixture() *fixture {
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		"p-finito":    {ID: "p-finito", Name: "Garrafa térmica", Price: decimal.NewFromFloat(45.50), Quantity: 2, Active: true},
		"p-ilimitado": {ID: "p-ilimitado", Name: "Aula avulsa", Price: decimal.NewFromFloat(30), Quantity: entity.QuantityUnlimited, Active: true},
	}}
	clientRepo := &memClientRepo{clients: map[string]*entity.Client{
		"c-1": {ID: "c-1", Name: "Marcos Silva"},
	}}
	txnRepo := &memTxnRepo{}
	logRepo := &memLogRepo{}
	rec := &fakeRec{}
	runner := &saleRunner{productRepo: productRepo, txnRepo: txnRepo, logRepo: logRepo}
	uc := NewUseCase(txnRepo, productRepo, clientRepo, runner, rec, time.UTC)
	return &fixture{uc: uc, productRepo: productRepo, txnRepo: txnRepo, logRepo: logRepo, rec: rec}
}

func vendedora() *entity.User {
	return &entity.User{ID: "u-v1", Username: "joana", Role: entity.RoleVendas}
}

func recepcao() *entity.User {
	return &entity.User{ID: "u-rec", Username: "paula", Role: entity.RoleReception}
}

// ─── RegisterTransaction ────────────────────────────────────────────────────

func TestRegisterTransaction_EntradaValida(t *testing.T) {
	f := newFixture()
	out, err := f.uc.RegisterTransaction(recepcao(), dto.CreateTransactionRequest{
		Type:          entity.TransactionEntrada,
		Amount:        decimal.NewFromFloat(150.00),
		Description:   "mensalidade em atraso",
		PaymentMethod: entity.PaymentDinheiro,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionEntrada, out.Type)
	assert.Equal(t, "u-rec", out.UserID)
	assert.Contains(t, f.rec.actions, entity.ActionTransactionCreated)
}

func TestRegisterTransaction_PagamentoClienteRejeitado(t *testing.T) {
	// pagamento_cliente só nasce da quitação de parcela, nunca direto
	f := newFixture()
	_, err := f.uc.RegisterTransaction(recepcao(), dto.CreateTransactionRequest{
		Type:          entity.TransactionPagamentoCliente,
		Amount:        decimal.NewFromFloat(10),
		Description:   "x",
		PaymentMethod: entity.PaymentPix,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransaction_ValorNaoPositivoRejeitado(t *testing.T) {
	f := newFixture()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-5)} {
		_, err := f.uc.RegisterTransaction(recepcao(), dto.CreateTransactionRequest{
			Type:          entity.TransactionSaida,
			Amount:        amount,
			Description:   "x",
			PaymentMethod: entity.PaymentDinheiro,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor %s", amount)
	}
}

// ─── RegisterSale ───────────────────────────────────────────────────────────

func TestRegisterSale_BaixaDeEstoqueETotal(t *testing.T) {
	f := newFixture()
	out, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID:     "p-finito",
		Quantity:      2,
		PaymentMethod: entity.PaymentCartao,
	})
	require.NoError(t, err)

	assert.True(t, out.TotalValue.Equal(decimal.NewFromFloat(91.00)),
		"total = %s, esperado 2 x 45.50", out.TotalValue)
	assert.Equal(t, 0, f.productRepo.products["p-finito"].Quantity)
	assert.Equal(t, entity.TransactionEntrada, out.Transaction.Type)

	// auditoria dentro da mesma transação da venda
	require.Len(t, f.logRepo.entries, 1)
	assert.Equal(t, entity.ActionSaleRegistered, f.logRepo.entries[0].Action)
}

func TestRegisterSale_EstoqueInsuficiente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID:     "p-finito",
		Quantity:      3,
		PaymentMethod: entity.PaymentPix,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada persistido: nem movimentação, nem auditoria, nem baixa
	assert.Empty(t, f.txnRepo.created)
	assert.Empty(t, f.logRepo.entries)
	assert.Equal(t, 2, f.productRepo.products["p-finito"].Quantity)
}

func TestRegisterSale_UltimaUnidadeSoVendeUmaVez(t *testing.T) {
	f := newFixture()
	f.productRepo.products["p-finito"].Quantity = 1

	_, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID: "p-finito", Quantity: 1, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)

	_, err = f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID: "p-finito", Quantity: 1, PaymentMethod: entity.PaymentPix,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"a segunda venda da última unidade deve falhar")
	assert.Len(t, f.txnRepo.created, 1, "exatamente uma venda registrada")
}

func TestRegisterSale_IlimitadoNuncaEsgota(t *testing.T) {
	f := newFixture()
	for i := 0; i < 5; i++ {
		_, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
			ProductID: "p-ilimitado", Quantity: 10, PaymentMethod: entity.PaymentPix,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, entity.QuantityUnlimited, f.productRepo.products["p-ilimitado"].Quantity,
		"o sentinela de ilimitado não pode ser decrementado")
}

// ─── List / MyReports: isolamento do papel vendas ───────────────────────────

func TestList_VendasSoVeAsPropriasMovimentacoes(t *testing.T) {
	f := newFixture()
	outra := &entity.User{ID: "u-v2", Username: "bia", Role: entity.RoleVendas}

	_, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID: "p-ilimitado", Quantity: 1, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)
	_, err = f.uc.RegisterSale(context.Background(), outra, dto.CreateSaleRequest{
		ProductID: "p-ilimitado", Quantity: 1, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)

	list, err := f.uc.List(vendedora(), "", "", "", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1, "vendas só enxerga as próprias movimentações")
	assert.Equal(t, "u-v1", list[0].UserID)

	all, err := f.uc.List(recepcao(), "", "", "", 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "recepção enxerga todas")
}

func TestMyReports_SomaSoAsVendasDoAutor(t *testing.T) {
	f := newFixture()
	outra := &entity.User{ID: "u-v2", Username: "bia", Role: entity.RoleVendas}

	_, err := f.uc.RegisterSale(context.Background(), vendedora(), dto.CreateSaleRequest{
		ProductID: "p-ilimitado", Quantity: 2, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)
	_, err = f.uc.RegisterSale(context.Background(), outra, dto.CreateSaleRequest{
		ProductID: "p-ilimitado", Quantity: 1, PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)

	// entrada avulsa de caixa não conta como venda
	_, err = f.uc.RegisterTransaction(vendedora(), dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: decimal.NewFromFloat(99),
		Description: "avulso", PaymentMethod: entity.PaymentDinheiro,
	})
	require.NoError(t, err)

	out, err := f.uc.MyReports(vendedora(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalSales)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromFloat(60)),
		"total = %s, esperado 2 x 30", out.TotalValue)
}
