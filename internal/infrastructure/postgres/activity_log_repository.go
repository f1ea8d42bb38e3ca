package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementação do porto ActivityLogRepository sobre PostgreSQL.
// A trilha é append-only: o adaptador não expõe UPDATE nem DELETE.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository constrói o adaptador da trilha. Passar pool ou tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append grava um registro na trilha.
func (r *ActivityLogRepo) Append(entry *entity.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (id, user_id, username, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.Username, entry.Action, entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// Query lista registros aplicando os filtros conjuntivamente, do mais recente
// para o mais antigo.
func (r *ActivityLogRepo) Query(filter repository.ActivityLogFilter) ([]*entity.ActivityLogEntry, error) {
	var (
		conds []string
		args  []any
	)
	if filter.DateStart != nil {
		args = append(args, *filter.DateStart)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.DateEnd != nil {
		args = append(args, *filter.DateEnd)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(filter.Usernames) > 0 {
		args = append(args, filter.Usernames)
		conds = append(conds, fmt.Sprintf("username = ANY($%d)", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}

	query := `SELECT id, user_id, username, action, detail, created_at FROM activity_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLogEntry
	for rows.Next() {
		var e entity.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListUsernames devolve os nomes de usuário distintos presentes na trilha.
func (r *ActivityLogRepo) ListUsernames() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT DISTINCT username FROM activity_logs`)
	if err != nil {
		return nil, fmt.Errorf("list activity log usernames: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
