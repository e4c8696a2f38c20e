package controllers

import (
	"net/http"
	"strings"

	"tilecrm-backend/models"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateOrderInput struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	SrNo      int       `json:"srNo"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	Grade     string    `json:"grade"`
	BoxNumber int       `json:"boxNumber"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
}

type UpdateOrderInput struct {
	CompanyID *uuid.UUID `json:"companyId"`
	SrNo      *int       `json:"srNo"`
	Name      *string    `json:"name"`
	Size      *string    `json:"size"`
	Grade     *string    `json:"grade"`
	BoxNumber *int       `json:"boxNumber"`
	Amount    *float64   `json:"amount"`
	Status    *string    `json:"status"`
}

func (in UpdateOrderInput) apply(o *models.Order) {
	if in.CompanyID != nil {
		o.CompanyID = *in.CompanyID
	}
	if in.SrNo != nil {
		o.SrNo = *in.SrNo
	}
	if in.Name != nil {
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.Size != nil {
		o.Size = *in.Size
	}
	if in.Grade != nil {
		o.Grade = *in.Grade
	}
	if in.BoxNumber != nil {
		o.BoxNumber = *in.BoxNumber
	}
	if in.Amount != nil {
		o.Amount = *in.Amount
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
}

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	customerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order := models.Order{
		CompanyID: input.CompanyID,
		SrNo:      input.SrNo,
		Name:      strings.TrimSpace(input.Name),
		Size:      input.Size,
		Grade:     input.Grade,
		BoxNumber: input.BoxNumber,
		Amount:    input.Amount,
		Status:    input.Status,
	}
	if err := oc.orders.Create(c.Request.Context(), customerID, &order); err != nil {
		respondError(c, err, "Customer not found", "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders lists the orders of one customer
func (oc *OrderController) GetOrders(c *gin.Context) {
	customerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	orders, err := oc.orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.orders.Update(c.Request.Context(), id, input.apply)
	if err != nil {
		respondError(c, err, "Order not found", "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := oc.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Order not found", "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
