package handler

import (
	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	result, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Printed {
		response.OK(c, "No printer configured, receipt returned for preview", result)
		return
	}
	response.OK(c, "Test page sent to printer", result)
}

// PrintBill prints the receipt of a submitted bill.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	id, ok := uuidParam(c, "id", "bill")
	if !ok {
		return
	}

	result, err := h.printerService.PrintBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Printed {
		response.OK(c, "No printer configured, receipt returned for preview", result)
		return
	}
	response.OK(c, "Receipt sent to printer", result)
}
