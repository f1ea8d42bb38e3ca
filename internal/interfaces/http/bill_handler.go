package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/caixa-api/internal/application/billing"
	"github.com/rmacedo/caixa-api/internal/application/dto"
)

// BillHandler trata as cobranças parceladas e seus carnês.
type BillHandler struct {
	uc *billing.UseCase
}

// NewBillHandler constrói o handler.
func NewBillHandler(uc *billing.UseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cobrança parcelada
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBillRequest  true  "client_id, installments; total_amount ou product_id"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	bill, err := h.uc.CreateBill(c.Context(), Actor(c), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// List GET /api/bills?limit=&offset= — papel vendas só vê as próprias.
func (h *BillHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListBills(Actor(c), limit, offset)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/bills/:id — cobrança com parcelas.
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, installments, err := h.uc.GetBill(Actor(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"bill":         bill,
		"installments": installments,
	})
}

// ListPending GET /api/bills/pending?month=&year=&client_id=
func (h *BillHandler) ListPending(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month", "0"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	list, err := h.uc.ListPending(month, year, c.Query("client_id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(list)
}

// PayInstallment godoc
// @Summary      Quitar parcela (pagamento integral)
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID da parcela"
// @Param        body  body  payInstallmentBody  true  "payment_method"
// @Success      200   {object}  dto.PayInstallmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills/installments/{id}/pay [post]
func (h *BillHandler) PayInstallment(c *fiber.Ctx) error {
	var in payInstallmentBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.PayInstallment(c.Context(), Actor(c), c.Params("id"), in.PaymentMethod)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return c.JSON(out)
}

// Carne GET /api/bills/:id/carne — carnê em PDF.
func (h *BillHandler) Carne(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Carne(Actor(c), c.Params("id"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carne.pdf"`)
	return c.Send(pdfBytes)
}

// payInstallmentBody corpo do pagamento de parcela.
type payInstallmentBody struct {
	PaymentMethod string `json:"payment_method"`
}
