package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUserDisabled        = errors.New("usuário inativo")
	ErrUsernameTaken       = errors.New("usuário já existe")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("sem permissão")
	ErrConflict            = errors.New("conflito com o estado atual")
	ErrAlreadyPaid         = errors.New("parcela já paga")
	ErrInsufficientStock   = errors.New("quantidade insuficiente em estoque")
	ErrClientHasOpenBills  = errors.New("cliente possui cobranças com parcelas pendentes")
	ErrProductHasOpenBills = errors.New("produto possui cobranças com parcelas pendentes")
	ErrProtectedUser       = errors.New("o usuário administrador principal não pode ser excluído")
)
