package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	uc             *inventory.InventoryUseCase
	validate       *Validator
	uploadMaxBytes int64
}

// NewInventoryHandler construye el handler. uploadMaxBytes limita el tamaño del Excel.
func NewInventoryHandler(uc *inventory.InventoryUseCase, validate *Validator, uploadMaxBytes int64) *InventoryHandler {
	return &InventoryHandler{uc: uc, validate: validate, uploadMaxBytes: uploadMaxBytes}
}

// List GET /api/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), GetMerchantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// Get GET /api/inventory/:itemId
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), GetMerchantID(c), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Movements GET /api/inventory/:itemId/movements?limit=&offset=
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, h.validate, &page); err != nil {
		return writeError(c, err)
	}
	movs, err := h.uc.ListMovements(c.Context(), GetMerchantID(c), c.Params("itemId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movs)
}

// AddManual godoc
// @Summary      Alta manual de item (suma stock si el nombre ya existe)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualItemRequest  true  "item"
// @Success      201   {object}  dto.UpsertItemResponse
// @Success      200   {object}  dto.UpsertItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/manual [post]
func (h *InventoryHandler) AddManual(c *fiber.Ctx) error {
	var in dto.ManualItemRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeError(c, err)
	}
	resp, err := h.uc.AddManual(c.Context(), GetMerchantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if resp.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

// ImportExcel godoc
// @Summary      Carga masiva de inventario desde .xlsx
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        excel  formData  file  true  "libro .xlsx"
// @Success      200    {object}  dto.ImportResult
// @Failure      400    {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/excel [post]
func (h *InventoryHandler) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("excel")
	if err != nil {
		return writeError(c, domain.Invalid("excel file is required"))
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".xlsx" {
		return writeError(c, domain.Invalid("only .xlsx files are supported"))
	}
	if h.uploadMaxBytes > 0 && fh.Size > h.uploadMaxBytes {
		return writeError(c, domain.Invalid("file exceeds %d bytes", h.uploadMaxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	res, err := h.uc.ImportExcel(c.Context(), GetMerchantID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
