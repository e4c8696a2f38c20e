// utils/validation.go
package utils

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"tilecrm-backend/models"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	aadharPattern = regexp.MustCompile(`^\d{12}$`)
)

// ValidationErrors maps a field name to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Valid() bool { return len(v) == 0 }

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidatePhone checks if a phone number is in a valid international format.
// A single trunk prefix 0 on a local number is accepted.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	cleaned = strings.TrimPrefix(cleaned, "0")
	return phonePattern.MatchString(cleaned)
}

func ValidateCustomer(c *models.Customer) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(c.Mobile) == "" {
		errs["mobile"] = "Mobile is required"
	} else if !ValidatePhone(c.Mobile) {
		errs["mobile"] = "Invalid mobile number"
	}
	if c.PartnerMobile != "" && !ValidatePhone(c.PartnerMobile) {
		errs["partnerMobile"] = "Invalid partner mobile number"
	}
	if c.Type == "" {
		errs["type"] = "Customer type is required"
	} else if !slices.Contains(models.CustomerTypes, c.Type) {
		errs["type"] = "Invalid customer type"
	}
	if c.PanCard != "" && len(c.PanCard) != 10 {
		errs["panCard"] = "Invalid PAN card number"
	}
	if c.Aadhar != "" && !aadharPattern.MatchString(c.Aadhar) {
		errs["aadhar"] = "Invalid Aadhar number"
	}
	if c.Status != "" && !slices.Contains(models.CustomerStatuses, c.Status) {
		errs["status"] = "Invalid status"
	}

	return errs
}

func ValidateOrder(o *models.Order) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(o.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if o.Size == "" {
		errs["size"] = "Size is required"
	} else if !slices.Contains(models.TileSizes, o.Size) {
		errs["size"] = "Invalid tile size"
	}
	if o.Grade != "" && !slices.Contains(models.Grades, o.Grade) {
		errs["grade"] = "Invalid grade"
	}
	switch {
	case o.Amount == 0:
		errs["amount"] = "Amount is required"
	case o.Amount < 0:
		errs["amount"] = "Amount cannot be negative"
	}
	if o.BoxNumber < 0 {
		errs["boxNumber"] = "Box number cannot be negative"
	}
	if o.Status != "" && !slices.Contains(models.OrderStatuses, o.Status) {
		errs["status"] = "Invalid status"
	}

	return errs
}
