package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Caso de referência: 100.00 em 3 → 33.33, 33.33, 33.34.
func TestSplitAmount_CemEmTres(t *testing.T) {
	parts, err := billing.SplitAmount(dec("100.00"), 3)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.True(t, dec("33.33").Equal(parts[0]), "primeira parcela: %s", parts[0])
	assert.True(t, dec("33.33").Equal(parts[1]), "segunda parcela: %s", parts[1])
	assert.True(t, dec("33.34").Equal(parts[2]), "última parcela absorve o resto: %s", parts[2])
}

func TestSplitAmount_ParcelaUnica(t *testing.T) {
	parts, err := billing.SplitAmount(dec("59.90"), 1)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.True(t, dec("59.90").Equal(parts[0]))
}

// A soma das parcelas é sempre exatamente o total e nenhuma parcela é
// zero ou negativa, mesmo com divisões que não fecham em centavos.
func TestSplitAmount_SomaExataESemParcelaZerada(t *testing.T) {
	cases := []struct {
		total string
		n     int
	}{
		{"100.00", 3},
		{"1200.00", 12},
		{"0.05", 2},
		{"999.99", 7},
		{"10.01", 10},
		{"33.33", 6},
	}
	for _, tc := range cases {
		parts, err := billing.SplitAmount(dec(tc.total), tc.n)
		require.NoError(t, err, "total=%s n=%d", tc.total, tc.n)

		sum := decimal.Zero
		for i, p := range parts {
			assert.True(t, p.IsPositive(),
				"parcela %d de total=%s n=%d não pode ser zero/negativa: %s", i+1, tc.total, tc.n, p)
			sum = sum.Add(p)
		}
		assert.True(t, dec(tc.total).Equal(sum),
			"soma das parcelas deve ser exatamente o total: total=%s soma=%s", tc.total, sum)
	}
}

func TestSplitAmount_EntradasInvalidas(t *testing.T) {
	_, err := billing.SplitAmount(dec("100.00"), 0)
	assert.Error(t, err, "zero parcelas deve falhar")

	_, err = billing.SplitAmount(dec("100.00"), -3)
	assert.Error(t, err, "parcelas negativas devem falhar")

	_, err = billing.SplitAmount(dec("0"), 2)
	assert.Error(t, err, "total zero deve falhar")

	_, err = billing.SplitAmount(dec("-10.00"), 2)
	assert.Error(t, err, "total negativo deve falhar")

	_, err = billing.SplitAmount(dec("0.01"), 5)
	assert.Error(t, err, "total que não comporta o número de parcelas deve falhar")
}
