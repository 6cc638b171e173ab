package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
)

// PurchasingHandler proveedores, compras y pagos (protegido).
type PurchasingHandler struct {
	uc       *purchasing.PurchasingUseCase
	validate *Validator
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.PurchasingUseCase, validate *Validator) *PurchasingHandler {
	return &PurchasingHandler{uc: uc, validate: validate}
}

// CreateSupplier POST /api/suppliers
func (h *PurchasingHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.CreateSupplier(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// ListSuppliers GET /api/suppliers
func (h *PurchasingHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.uc.ListSuppliers(c.Context(), GetMerchantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreatePurchase godoc
// @Summary      Registrar compra a proveedor (entra al stock si trae itemId)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/purchases [post]
func (h *PurchasingHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.CreatePurchase(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListPurchases GET /api/purchases?limit=&offset=
func (h *PurchasingHandler) ListPurchases(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, h.validate, &page); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListPurchases(c.Context(), GetMerchantID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreatePayment POST /api/payments
func (h *PurchasingHandler) CreatePayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.CreatePayment(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListPayments GET /api/payments?limit=
func (h *PurchasingHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, h.validate, &page); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListPayments(c.Context(), GetMerchantID(c), page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
