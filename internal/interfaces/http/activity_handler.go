package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/dto"
)

// ActivityHandler trata a consulta da trilha de auditoria.
type ActivityHandler struct {
	uc *audit.UseCase
}

// NewActivityHandler constrói o handler.
func NewActivityHandler(uc *audit.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Consultar trilha de auditoria
// @Description  Filtros conjuntivos: intervalo de datas, ator (sem distinção de acentos) e ação.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        date_start  query  string  false  "Data inicial (2006-01-02)"
// @Param        date_end    query  string  false  "Data final inclusiva (2006-01-02)"
// @Param        actor       query  string  false  "Nome de usuário do autor"
// @Param        action      query  string  false  "Ação registrada"
// @Success      200  {array}   dto.ActivityLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var in dto.ActivityLogQuery
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parâmetros inválidos"})
	}
	list, err := h.uc.Query(in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}
