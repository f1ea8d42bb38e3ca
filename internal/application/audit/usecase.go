// Package audit implementa a trilha de auditoria: registro append-only de
// toda ação mutadora e consulta com filtros conjuntivos.
package audit

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// Recorder é o contrato mínimo que os demais casos de uso precisam para
// registrar na trilha. Falha de Record é falha de armazenamento e deve subir
// como erro fatal (5xx); nunca é silenciada.
type Recorder interface {
	Record(userID, username, action, detail string) error
}

// UseCase registro e consulta da trilha de auditoria.
type UseCase struct {
	repo repository.ActivityLogRepository
	loc  *time.Location // fuso do negócio para os filtros de data
}

var _ Recorder = (*UseCase)(nil)

// NewUseCase constrói o caso de uso. loc nil cai em UTC.
func NewUseCase(repo repository.ActivityLogRepository, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{repo: repo, loc: loc}
}

// Record insere uma entrada na trilha. Append-only: não há caminho de update.
func (uc *UseCase) Record(userID, username, action, detail string) error {
	entry := &entity.ActivityLogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Append(entry); err != nil {
		return fmt.Errorf("audit: gravar entrada: %w", err)
	}
	return nil
}

// Query consulta a trilha, da entrada mais nova para a mais antiga.
// Filtros opcionais e conjuntivos; datas inclusivas nas duas pontas no fuso
// do negócio; nome do ator casa sem diferenciar acentos ou caixa.
func (uc *UseCase) Query(in dto.ActivityLogQuery) ([]dto.ActivityLogResponse, error) {
	in.DefaultPage()
	filter := repository.ActivityLogFilter{
		Action: in.Action,
		Limit:  in.Limit,
		Offset: in.Offset,
	}

	if in.DateStart != "" {
		t, err := time.ParseInLocation("2006-01-02", in.DateStart, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.DateStart = &t
	}
	if in.DateEnd != "" {
		t, err := time.ParseInLocation("2006-01-02", in.DateEnd, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo: até o último instante do dia informado.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateEnd = &end
	}

	if in.Actor != "" {
		usernames, err := uc.matchUsernames(in.Actor)
		if err != nil {
			return nil, err
		}
		if len(usernames) == 0 {
			return []dto.ActivityLogResponse{}, nil
		}
		filter.Usernames = usernames
	}

	entries, err := uc.repo.Query(filter)
	if err != nil {
		return nil, fmt.Errorf("audit: consultar trilha: %w", err)
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  e.Username,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// matchUsernames resolve o filtro de ator: compara a forma sem acentos e em
// minúsculas do termo com os nomes distintos presentes na trilha.
func (uc *UseCase) matchUsernames(actor string) ([]string, error) {
	all, err := uc.repo.ListUsernames()
	if err != nil {
		return nil, fmt.Errorf("audit: listar atores: %w", err)
	}
	needle := foldName(actor)
	var matched []string
	for _, name := range all {
		if strings.Contains(foldName(name), needle) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// foldTransformer decompõe (NFD), remove as marcas combinantes (acentos) e
// recompõe (NFC). "José" → "Jose".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldName(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
