package utils

import (
	"testing"

	"tilecrm-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"9876543210", "+919876543210", "+91 98765-43210", "(987) 654 3210", "09876543210", "020 2612 3456"} {
		assert.True(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"", "0", "00123456789", "+0123456789", "abc", "+", "12345678901234567"} {
		assert.False(t, ValidatePhone(bad), bad)
	}
}

func TestValidateCustomer(t *testing.T) {
	valid := models.Customer{Name: "John Builders", Type: models.CustomerTypeBuilder, Mobile: "9876543210"}

	tests := []struct {
		name   string
		modify func(c *models.Customer)
		field  string
		msg    string
	}{
		{"name", func(c *models.Customer) { c.Name = "  " }, "name", "Name is required"},
		{"mobile missing", func(c *models.Customer) { c.Mobile = "" }, "mobile", "Mobile is required"},
		{"mobile invalid", func(c *models.Customer) { c.Mobile = "12ab" }, "mobile", "Invalid mobile number"},
		{"partner mobile", func(c *models.Customer) { c.PartnerMobile = "x" }, "partnerMobile", "Invalid partner mobile number"},
		{"type missing", func(c *models.Customer) { c.Type = "" }, "type", "Customer type is required"},
		{"type invalid", func(c *models.Customer) { c.Type = "SHOP" }, "type", "Invalid customer type"},
		{"pan", func(c *models.Customer) { c.PanCard = "ABCDE1234" }, "panCard", "Invalid PAN card number"},
		{"aadhar", func(c *models.Customer) { c.Aadhar = "12345678901a" }, "aadhar", "Invalid Aadhar number"},
		{"status", func(c *models.Customer) { c.Status = "lost" }, "status", "Invalid status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			errs := ValidateCustomer(&c)
			assert.False(t, errs.Valid())
			assert.Equal(t, ValidationErrors{tt.field: tt.msg}, errs)
		})
	}

	full := valid
	full.PanCard = "ABCDE1234F"
	full.Aadhar = "123456789012"
	full.Status = "negotiation"
	full.Type = models.CustomerTypeBungalow
	assert.True(t, ValidateCustomer(&full).Valid())
}

func TestValidateOrder(t *testing.T) {
	valid := models.Order{Name: "Glossy", Size: "600x600", Grade: "PRE", Amount: 500, BoxNumber: 10}
	assert.True(t, ValidateOrder(&valid).Valid())

	o := models.Order{Size: "1x1", Grade: "ECO", Status: "lost"}
	assert.Equal(t, ValidationErrors{
		"name":   "Product name is required",
		"size":   "Invalid tile size",
		"grade":  "Invalid grade",
		"amount": "Amount is required",
		"status": "Invalid status",
	}, ValidateOrder(&o))
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{"name": "Name is required", "amount": "Amount is required"}
	assert.Equal(t, "validation failed: amount: Amount is required; name: Name is required", errs.Error())
}
