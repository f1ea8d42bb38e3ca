// Package br reúne validações de documentos brasileiros usadas pelo cadastro
// de clientes (CPF, módulo 11 da Receita Federal).
package br

import "fmt"

// ValidateCPF valida os dois dígitos verificadores do CPF segundo o algoritmo
// módulo 11 da Receita Federal. Aceita "529.982.247-25", "52998224725" ou
// qualquer mistura de pontuação.
func ValidateCPF(cpf string) error {
	digits := extractDigits(cpf)
	if len(digits) != 11 {
		return fmt.Errorf("br: CPF deve ter 11 dígitos, foram encontrados %d", len(digits))
	}
	if allEqual(digits) {
		// Sequências como 111.111.111-11 passam no módulo 11 mas são inválidas.
		return fmt.Errorf("br: CPF com todos os dígitos iguais é inválido")
	}

	if d := checkDigit(digits[:9], 10); d != digits[9] {
		return fmt.Errorf("br: primeiro dígito verificador do CPF inválido: esperado %c, recebido %c", d, digits[9])
	}
	if d := checkDigit(digits[:10], 11); d != digits[10] {
		return fmt.Errorf("br: segundo dígito verificador do CPF inválido: esperado %c, recebido %c", d, digits[10])
	}
	return nil
}

// FormatCPF devolve o CPF no formato canônico XXX.XXX.XXX-XX.
// Não valida; use ValidateCPF antes de persistir.
func FormatCPF(cpf string) string {
	digits := extractDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[0:3], digits[3:6], digits[6:9], digits[9:11])
}

// checkDigit calcula um dígito verificador: pesos decrescentes a partir de
// startWeight, resto < 2 vira 0, senão 11 - resto.
func checkDigit(base []byte, startWeight int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * (startWeight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// extractDigits mantém apenas dígitos ASCII. Dígitos de outros alfabetos
// não entram no CPF e seriam truncados pelo cast para byte.
func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
