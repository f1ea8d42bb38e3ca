package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/caixa-api/internal/application/cashbox"
	"github.com/rmacedo/caixa-api/internal/application/dto"
)

// TransactionHandler trata as movimentações de caixa e vendas.
type TransactionHandler struct {
	uc *cashbox.UseCase
}

// NewTransactionHandler constrói o handler.
func NewTransactionHandler(uc *cashbox.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada ou saída de caixa
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTransactionRequest  true  "type (entrada|saida), amount, description, payment_method"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	txn, err := h.uc.RegisterTransaction(Actor(c), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// List GET /api/transactions?type=&date_start=&date_end=&limit=&offset=
// Papel vendas enxerga apenas as próprias movimentações.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(Actor(c), c.Query("type"), c.Query("date_start"), c.Query("date_end"), limit, offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}

// CreateSale godoc
// @Summary      Registrar venda (baixa de estoque + entrada de caixa)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "product_id, quantity, payment_method, client_id opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	sale, err := h.uc.RegisterSale(c.Context(), Actor(c), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// MyReports GET /api/my-reports?month=&year= — vendas do próprio usuário.
func (h *TransactionHandler) MyReports(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month", "0"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	out, err := h.uc.MyReports(Actor(c), month, year)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(out)
}
