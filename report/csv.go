// Package report renders customer data for download: the CSV customer export
// and the per-customer PDF receipt.
package report

import (
	"encoding/csv"
	"io"

	"tilecrm-backend/models"
	"tilecrm-backend/utils"
)

var customerCSVHeader = []string{"Name", "Type", "City", "Reference", "Date", "Status"}

// WriteCustomersCSV writes one row per customer. Empty values are written as "-".
func WriteCustomersCSV(w io.Writer, customers []models.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(customerCSVHeader); err != nil {
		return err
	}
	for _, c := range customers {
		row := []string{
			utils.OrDash(c.Name),
			utils.OrDash(c.Type),
			utils.OrDash(c.City),
			utils.OrDash(c.Reference),
			utils.FormatDateLayout(c.Date, utils.ExportDateLayout),
			utils.OrDash(c.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
