package repository

import (
	"time"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
)

// ActivityLogFilter filtros opcionais e conjuntivos (AND) da trilha de auditoria.
// Datas são inclusivas nas duas pontas.
type ActivityLogFilter struct {
	DateStart *time.Time
	DateEnd   *time.Time
	Usernames []string // candidatos já normalizados pelo caso de uso; vazio ignora
	Action    string
	Limit     int
	Offset    int
}

// ActivityLogRepository define o porto da trilha de auditoria (append-only).
// Não existem Update nem Delete: a trilha é imutável por contrato.
type ActivityLogRepository interface {
	Append(entry *entity.ActivityLogEntry) error
	Query(filter ActivityLogFilter) ([]*entity.ActivityLogEntry, error)
	// ListUsernames devolve os nomes de usuário distintos presentes na trilha,
	// para o match de ator insensível a acentos feito no caso de uso.
	ListUsernames() ([]string, error)
}
