package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
)

// BillHandler maneja la generación y consulta de facturas (protegido).
type BillHandler struct {
	uc       *billing.CreateBillUseCase
	receipts *billing.ReceiptUseCase
	validate *Validator
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.CreateBillUseCase, receipts *billing.ReceiptUseCase, validate *Validator) *BillHandler {
	return &BillHandler{uc: uc, receipts: receipts, validate: validate}
}

// Create godoc
// @Summary      Generar factura (descuenta stock de forma atómica)
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "carrito"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "ITEM_NOT_FOUND"
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Security     BearerAuth
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, err)
	}
	bill, err := h.uc.CreateBill(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// List GET /api/bills?limit=&offset=
func (h *BillHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, h.validate, &page); err != nil {
		return writeError(c, err)
	}
	bills, err := h.uc.ListBills(c.Context(), GetMerchantID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bills)
}

// Get GET /api/bills/:billId
func (h *BillHandler) Get(c *fiber.Ctx) error {
	id, err := billID(c)
	if err != nil {
		return writeError(c, err)
	}
	bill, err := h.uc.GetBill(c.Context(), GetMerchantID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// Receipt GET /api/bills/:billId/receipt
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	id, err := billID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.receipts.DownloadReceipt(c.Context(), GetMerchantID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

func billID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("billId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("invalid bill id")
	}
	return id, nil
}
