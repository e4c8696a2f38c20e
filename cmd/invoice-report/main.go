// Command invoice-report prints a customer's invoice as text tables, one per
// company, followed by the grand totals.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"tilecrm-backend/config"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		customer  = flag.String("customer", "", "customer id to report on")
		persisted = flag.Bool("persisted", true, "use stored params only; false fills invoice defaults")
	)
	flag.Parse()

	cfg := config.Load()
	config.NewLogger(cfg.LogLevel, "pretty")

	id, err := uuid.Parse(*customer)
	if err != nil {
		log.Fatal().Str("customer", *customer).Msg("-customer must be a customer id")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	mode := services.WorkingCopy
	if *persisted {
		mode = services.Persisted
	}
	invoices := services.NewInvoiceService(db, services.NewCustomerService(db))
	view, err := invoices.Load(context.Background(), id, mode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load invoice")
	}

	if err := writeReport(os.Stdout, view); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
}

func writeReport(w io.Writer, view *services.InvoiceView) error {
	c := view.Customer
	fmt.Fprintf(w, "%s (%s) %s, %s\n", c.Name, c.Type, utils.OrDash(c.City), utils.FormatDate(c.Date))

	for _, company := range view.Companies {
		fmt.Fprintf(w, "\n%s\n", company.CompanyName)

		table := tablewriter.NewWriter(w)
		table.Header("Sr.", "Name", "Size", "Box", "Sq.Ft", "Bill Amount", "Cash Rate", "Cash Amount", "Total")
		for _, row := range company.Rows {
			o := row.Order
			err := table.Append([]string{
				strconv.Itoa(o.SrNo),
				o.Name,
				o.Size,
				strconv.Itoa(o.BoxNumber),
				utils.FormatNumber(row.Figures.SqftFactor),
				utils.Money(row.Figures.BillAmount),
				utils.Money(row.Figures.CashRate),
				utils.Money(row.Figures.CashAmount),
				utils.Money(row.Figures.TotalAmount),
			})
			if err != nil {
				return err
			}
		}
		t := company.Totals
		table.Footer("", "Total", "", utils.FormatNumber(t.TotalBox), "",
			utils.Money(t.TotalBillAmount), "", utils.Money(t.TotalCashAmount), utils.Money(company.FinalTotal))
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nTotal Bill:  %s\n", utils.Money(view.GrandTotals.TotalBillAmount))
	fmt.Fprintf(w, "Total Cash:  %s\n", utils.Money(view.GrandTotals.TotalCashAmount))
	fmt.Fprintf(w, "Grand Total: %s\n", utils.Money(view.FinalTotal))
	return nil
}
