package cashbox

import (
	"context"

	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados àquela tx. Garante que a baixa de estoque, a
// movimentação de caixa e a entrada de auditoria de uma venda sejam atômicas.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
		logRepo repository.ActivityLogRepository,
	) error) error
}
