package controllers

import (
	"net/http"
	"strings"

	"tilecrm-backend/models"
	"tilecrm-backend/report"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Mobile        string              `json:"mobile"`
	PartnerMobile string              `json:"partnerMobile"`
	PanCard       string              `json:"panCard"`
	Aadhar        string              `json:"aadhar"`
	GSTNumber     string              `json:"gstNumber"`
	City          string              `json:"city"`
	District      string              `json:"district"`
	State         string              `json:"state"`
	Address       string              `json:"address"`
	Date          *utils.FlexibleTime `json:"date"`
	VisitFactory  *utils.FlexibleTime `json:"visitFactory"`
	Status        string              `json:"status"`
	Reference     string              `json:"reference"`
	Note          string              `json:"note"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer.
// Only the fields present are changed.
type UpdateCustomerInput struct {
	Name          *string             `json:"name"`
	Type          *string             `json:"type"`
	Mobile        *string             `json:"mobile"`
	PartnerMobile *string             `json:"partnerMobile"`
	PanCard       *string             `json:"panCard"`
	Aadhar        *string             `json:"aadhar"`
	GSTNumber     *string             `json:"gstNumber"`
	City          *string             `json:"city"`
	District      *string             `json:"district"`
	State         *string             `json:"state"`
	Address       *string             `json:"address"`
	Date          *utils.FlexibleTime `json:"date"`
	VisitFactory  *utils.FlexibleTime `json:"visitFactory"`
	Status        *string             `json:"status"`
	Reference     *string             `json:"reference"`
	Note          *string             `json:"note"`
}

func (in UpdateCustomerInput) apply(c *models.Customer) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, in.Name)
	set(&c.Type, in.Type)
	set(&c.Mobile, in.Mobile)
	set(&c.PartnerMobile, in.PartnerMobile)
	set(&c.PanCard, in.PanCard)
	set(&c.Aadhar, in.Aadhar)
	set(&c.GSTNumber, in.GSTNumber)
	set(&c.City, in.City)
	set(&c.District, in.District)
	set(&c.State, in.State)
	set(&c.Address, in.Address)
	set(&c.Status, in.Status)
	set(&c.Reference, in.Reference)
	set(&c.Note, in.Note)
	if in.Date != nil {
		c.Date = in.Date.Ptr()
	}
	if in.VisitFactory != nil {
		c.VisitFactory = in.VisitFactory.Ptr()
	}
}

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

// CreateCustomer stores a new customer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer := models.Customer{
		Name:          strings.TrimSpace(input.Name),
		Type:          strings.TrimSpace(input.Type),
		Mobile:        strings.TrimSpace(input.Mobile),
		PartnerMobile: strings.TrimSpace(input.PartnerMobile),
		PanCard:       strings.TrimSpace(input.PanCard),
		Aadhar:        strings.TrimSpace(input.Aadhar),
		GSTNumber:     strings.TrimSpace(input.GSTNumber),
		City:          strings.TrimSpace(input.City),
		District:      strings.TrimSpace(input.District),
		State:         strings.TrimSpace(input.State),
		Address:       input.Address,
		Date:          input.Date.Ptr(),
		VisitFactory:  input.VisitFactory.Ptr(),
		Status:        input.Status,
		Reference:     strings.TrimSpace(input.Reference),
		Note:          input.Note,
	}

	if err := cc.customers.Create(c.Request.Context(), &customer); err != nil {
		respondError(c, err, "Customer not found", "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers matching the query filters
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	filter, ok := customerFilter(c)
	if !ok {
		return
	}

	customers, err := cc.customers.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	customer, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), id, input.apply)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Customer not found", "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// ExportCustomers downloads the filtered customer list as CSV
func (cc *CustomerController) ExportCustomers(c *gin.Context) {
	filter, ok := customerFilter(c)
	if !ok {
		return
	}

	customers, err := cc.customers.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to export customers")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="customers.csv"`)
	c.Status(http.StatusOK)
	if err := report.WriteCustomersCSV(c.Writer, customers); err != nil {
		log.Error().Err(err).Msg("Failed to write customer export")
	}
}

// customerFilter reads the list filters from the query string. A date-only
// "to" covers the whole of that day.
func customerFilter(c *gin.Context) (services.CustomerFilter, bool) {
	f := services.CustomerFilter{
		Search:        strings.TrimSpace(c.Query("search")),
		Type:          c.Query("type"),
		Status:        c.Query("status"),
		City:          c.Query("city"),
		State:         c.Query("state"),
		SortBy:        c.Query("sortBy"),
		SortDirection: c.DefaultQuery("sortDirection", "asc"),
	}

	if f.SortBy != "" && !services.IsCustomerSortKey(f.SortBy) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sort field")
		return f, false
	}

	if from := c.Query("from"); from != "" {
		t, err := utils.ParseDate(from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date")
			return f, false
		}
		f.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := utils.ParseDate(to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date")
			return f, false
		}
		if utils.IsDateOnly(to) {
			t = utils.EndOfDay(t)
		}
		f.To = &t
	}
	return f, true
}
