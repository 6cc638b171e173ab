package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/reports"
)

// ReportHandler reportes de ventas, inventario y cuentas por pagar (protegido).
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales GET /api/reports/sales?period=daily|weekly|monthly|yearly|lifetime
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	rep, err := h.uc.SalesReport(c.Context(), GetMerchantID(c), c.Query("period", reports.PeriodMonthly))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// Inventory GET /api/reports/inventory
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	rep, err := h.uc.InventoryReport(c.Context(), GetMerchantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// Financial GET /api/reports/financial
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	rep, err := h.uc.FinancialReport(c.Context(), GetMerchantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}
