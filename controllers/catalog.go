package controllers

import (
	"net/http"

	"tilecrm-backend/billing"
	"tilecrm-backend/models"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
)

type NameInput struct {
	Name string `json:"name" binding:"required"`
}

// CatalogController serves the lookup lists the forms pick from.
type CatalogController struct {
	catalog   *services.CatalogService
	customers *services.CustomerService
}

func NewCatalogController(catalog *services.CatalogService, customers *services.CustomerService) *CatalogController {
	return &CatalogController{catalog: catalog, customers: customers}
}

// CreateCompany returns 200 with the existing company when the name is
// already taken ignoring case, 201 otherwise.
func (cc *CatalogController) CreateCompany(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	company, created, err := cc.catalog.CreateCompany(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err, "Company not found", "Failed to create company")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, company)
}

func (cc *CatalogController) GetCompanies(c *gin.Context) {
	companies, err := cc.catalog.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Company not found", "Failed to retrieve companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (cc *CatalogController) CreateReference(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ref, err := cc.catalog.CreateReference(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err, "Reference not found", "Failed to create reference")
		return
	}
	c.JSON(http.StatusCreated, ref)
}

func (cc *CatalogController) GetReferences(c *gin.Context) {
	refs, err := cc.catalog.ListReferences(c.Request.Context())
	if err != nil {
		respondError(c, err, "Reference not found", "Failed to retrieve references")
		return
	}
	c.JSON(http.StatusOK, refs)
}

func (cc *CatalogController) GetCities(c *gin.Context) {
	cities, err := cc.customers.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, err, "City not found", "Failed to retrieve cities")
		return
	}
	c.JSON(http.StatusOK, nonNil(cities))
}

func (cc *CatalogController) GetStates(c *gin.Context) {
	states, err := cc.customers.ListStates(c.Request.Context())
	if err != nil {
		respondError(c, err, "State not found", "Failed to retrieve states")
		return
	}
	c.JSON(http.StatusOK, nonNil(states))
}

// GetConstants lists the fixed choices of the customer, order and invoice forms.
func (cc *CatalogController) GetConstants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"customerTypes":    models.CustomerTypes,
		"customerStatuses": models.CustomerStatuses,
		"tileSizes":        models.TileSizes,
		"grades":           models.Grades,
		"orderStatuses":    models.OrderStatuses,
		"sqftChoices":      billing.SqftChoices,
		"insuChoices":      billing.InsuChoices,
		"invoiceDefaults":  billing.Params{}.WithDefaults(),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
