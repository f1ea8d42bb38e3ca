package billing

import (
	"context"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// TxRunner executa o fluxo de cobrança dentro de uma transação de banco:
// os repositórios entregues ao callback operam sobre a mesma transação, e
// qualquer erro desfaz tudo.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		billRepo repository.BillRepository,
		txnRepo repository.TransactionRepository,
		logRepo repository.ActivityLogRepository,
	) error) error
}

// CarneData dados prontos para renderização do carnê de pagamento.
type CarneData struct {
	Bill         *entity.Bill
	Installments []*entity.Installment
	ClientName   string
	ClientCPF    string
	ProductName  string
}

// CarneGenerator gera o carnê em PDF de uma cobrança.
type CarneGenerator interface {
	Generate(data *CarneData) ([]byte, error)
}
