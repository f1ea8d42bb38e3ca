// Package billing contém a aritmética pura de parcelamento das cobranças.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitAmount divide total em n parcelas de centavos exatos. As n-1 primeiras
// recebem total/n arredondado para baixo em 2 casas; a última absorve o resto
// do arredondamento, de modo que a soma é exatamente o total.
// Ex.: 100.00 em 3 → 33.33, 33.33, 33.34.
func SplitAmount(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, fmt.Errorf("billing: número de parcelas deve ser ao menos 1, recebido %d", n)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("billing: valor total deve ser positivo, recebido %s", total)
	}

	base := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	if base.IsZero() {
		// Total menor que um centavo por parcela geraria parcelas zeradas.
		return nil, fmt.Errorf("billing: valor total %s não comporta %d parcelas", total, n)
	}

	parts := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		parts[i] = base
	}
	parts[n-1] = total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
	return parts, nil
}
