// controllers/invoice.go
package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"tilecrm-backend/billing"
	"tilecrm-backend/report"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SaveInvoiceInput carries the edited invoice params keyed by order id.
// Orders that are left out are saved with their stored params.
type SaveInvoiceInput struct {
	Params map[string]billing.Params `json:"params"`
}

type InvoiceController struct {
	invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

// GetInvoice returns the customer's invoice grid with defaults filled in
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := ic.invoices.Load(c.Request.Context(), id, services.WorkingCopy)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to load invoice")
		return
	}

	c.JSON(http.StatusOK, view)
}

// SaveInvoice recomputes and stores every order of the customer. Responds
// 207 when only some of the orders could be saved.
func (ic *InvoiceController) SaveInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input SaveInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	overrides := make(map[uuid.UUID]billing.Params, len(input.Params))
	for key, params := range input.Params {
		orderID, err := uuid.Parse(key)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid order id %q", key))
			return
		}
		overrides[orderID] = params
	}

	results, err := ic.invoices.Save(c.Request.Context(), id, overrides)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to save invoice")
		return
	}

	status := http.StatusOK
	if !services.AllSaved(results) {
		status = http.StatusMultiStatus
		log.Warn().Str("customer", id.String()).Msg("invoice saved with failures")
	}
	c.JSON(status, gin.H{"results": results})
}

// GetReceipt renders the stored invoice of a customer as PDF
func (ic *InvoiceController) GetReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := ic.invoices.Load(c.Request.Context(), id, services.Persisted)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to load invoice")
		return
	}

	var buf bytes.Buffer
	if err := report.RenderReceipt(&buf, view); err != nil {
		respondError(c, err, "Customer not found", "Failed to render receipt")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
