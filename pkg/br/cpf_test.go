package br_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/caixa-api/pkg/br"
)

// CPFs de teste gerados pelo algoritmo oficial (módulo 11).
const (
	cpfValido          = "52998224725"
	cpfValidoFormatado = "529.982.247-25"
)

func TestValidateCPF_Valido(t *testing.T) {
	assert.NoError(t, br.ValidateCPF(cpfValido))
	assert.NoError(t, br.ValidateCPF(cpfValidoFormatado),
		"pontuação não deve afetar a validação")
}

func TestValidateCPF_DigitoVerificadorErrado(t *testing.T) {
	// Último dígito alterado de 5 para 6.
	err := br.ValidateCPF("52998224726")
	assert.Error(t, err, "dígito verificador incorreto deve ser rejeitado")
}

func TestValidateCPF_TamanhoErrado(t *testing.T) {
	assert.Error(t, br.ValidateCPF("1234567890"), "10 dígitos deve ser rejeitado")
	assert.Error(t, br.ValidateCPF(""), "vazio deve ser rejeitado")
}

func TestValidateCPF_DigitosIguais(t *testing.T) {
	// 111.111.111-11 passa no módulo 11 mas é rejeitado pela Receita.
	assert.Error(t, br.ValidateCPF("11111111111"))
	assert.Error(t, br.ValidateCPF("000.000.000-00"))
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, cpfValidoFormatado, br.FormatCPF(cpfValido))
	assert.Equal(t, cpfValidoFormatado, br.FormatCPF(cpfValidoFormatado),
		"formatar um CPF já formatado deve ser idempotente")
}

func TestFormatCPF_EntradaInvalidaFicaIntacta(t *testing.T) {
	require.Equal(t, "abc", br.FormatCPF("abc"),
		"entrada sem 11 dígitos é devolvida como veio")
}

func TestValidateCPF_DigitosNaoASCIIIgnorados(t *testing.T) {
	// Dígitos devanágari ("१२३") não são dígitos de CPF: a entrada fica com
	// menos de 11 dígitos e é rejeitada, em vez de virar bytes truncados.
	assert.Error(t, br.ValidateCPF("१२३98224725"))
	assert.Equal(t, "१२३", br.FormatCPF("१२३"),
		"entrada sem dígitos ASCII suficientes é devolvida como veio")
}
