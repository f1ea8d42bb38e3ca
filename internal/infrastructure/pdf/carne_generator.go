// Package pdf implementa a geração do carnê de pagamento em PDF.
//
// Layout da página A4, uma ficha por parcela:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Descrição da cobrança  │  Cliente + CPF         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA 1: Parcela 1/N | Vencimento | Valor | ( ) Pago       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA 2: Parcela 2/N | Vencimento | Valor | ( ) Pago       │
//	│  ...                                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/rmacedo/caixa-api/internal/application/billing"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.CarneGenerator = (*CarneGenerator)(nil)

// CarneGenerator implementa billing.CarneGenerator usando Maroto v2.
type CarneGenerator struct{}

// NewCarneGenerator constrói o gerador.
func NewCarneGenerator() *CarneGenerator { return &CarneGenerator{} }

// Generate gera o carnê em PDF e devolve seus bytes.
func (g *CarneGenerator) Generate(data *appbilling.CarneData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Carnê de Pagamento", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, ins := range data.Installments {
		m.AddRows(fichaRow(ins, data.Bill.Installments))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	m.AddRows(footerRow(data.Bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar carnê: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: descrição da cobrança (esq) e cliente + CPF (dir).
func headerRow(data *appbilling.CarneData) core.Row {
	title := data.Bill.Description
	if title == "" {
		title = data.ProductName
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CARNÊ DE PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 7,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(data.ClientName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("CPF: "+nonEmpty(data.ClientCPF, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Emitido em "+data.Bill.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// fichaRow: uma ficha destacável por parcela.
func fichaRow(ins *entity.Installment, total int) core.Row {
	situacao := "(   ) PAGO"
	if ins.Paid {
		situacao = "( X ) PAGO"
		if ins.PaidAt != nil {
			situacao += " em " + ins.PaidAt.Format("02/01/2006")
		}
	}
	return row.New(16).Add(
		col.New(3).Add(
			text.New(fmt.Sprintf("Parcela %d/%d", ins.Number, total), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
		),
		col.New(3).Add(
			text.New("Vencimento", props.Text{Size: 7, Color: colorGray, Top: 2}),
			text.New(ins.DueDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
		col.New(3).Add(
			text.New("Valor", props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Right}),
			text.New("R$ "+ins.Amount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 7, Align: align.Right, Color: colorPrimary,
			}),
		),
		col.New(3).Add(
			text.New(situacao, props.Text{Size: 8, Top: 6, Align: align.Right}),
		),
	)
}

// footerRow: total da cobrança.
func footerRow(bill *entity.Bill) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(
				fmt.Sprintf("Total da cobrança: R$ %s em %d parcela(s). Guarde este carnê como comprovante.",
					bill.TotalAmount.StringFixed(2), bill.Installments),
				props.Text{Size: 8, Color: colorGray, Top: 4, Align: align.Center},
			),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
