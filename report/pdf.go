package report

import (
	"fmt"
	"io"

	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/jung-kurt/gofpdf"
)

type column struct {
	title string
	width float64
	align string
}

var receiptColumns = []column{
	{"Sr.", 10, "C"},
	{"Name", 45, "L"},
	{"Size", 22, "C"},
	{"Grade", 14, "C"},
	{"Box", 14, "R"},
	{"Sq.Ft", 16, "R"},
	{"Rate", 18, "R"},
	{"Bill Rate", 20, "R"},
	{"Insu.", 14, "R"},
	{"Tax", 14, "R"},
	{"Bill Amount", 32, "R"},
	{"Cash Rate", 22, "R"},
	{"Cash Amount", 32, "R"},
}

// The core PDF fonts have no rupee glyph.
const currency = "Rs. "

func rupees(v float64) string { return currency + utils.Money(v) }

// RenderReceipt writes the order receipt of one customer as an A4 landscape
// PDF: the customer's details, a table per company and the totals.
func RenderReceipt(w io.Writer, view *services.InvoiceView) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetTitle("Order Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	writeCustomerBlock(pdf, view)

	for _, company := range view.Companies {
		writeCompanyTable(pdf, company)
	}

	writeTotals(pdf, view)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return pdf.Output(w)
}

func writeCustomerBlock(pdf *gofpdf.Fpdf, view *services.InvoiceView) {
	c := view.Customer
	fields := [][2]string{
		{"Name", c.Name},
		{"Aadhar", c.Aadhar},
		{"Address", c.Address},
		{"City", c.City},
		{"District", c.District},
		{"State", c.State},
		{"Mobile", c.Mobile},
		{"Partner Mobile", c.PartnerMobile},
		{"GST Number", c.GSTNumber},
		{"PAN Card", c.PanCard},
		{"Reference", c.Reference},
		{"Date", utils.FormatDate(c.Date)},
		{"Note", c.Note},
		{"Status", c.Status},
		{"Type", c.Type},
		{"Total Amount", rupees(c.TotalAmount)},
	}

	const labelW, valueW = 32.0, 106.5
	for i, f := range fields {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelW, 6, f[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		ln := 0
		if i%2 == 1 {
			ln = 1
		}
		pdf.CellFormat(valueW, 6, utils.OrDash(f[1]), "", ln, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeCompanyTable(pdf *gofpdf.Fpdf, company services.CompanyInvoice) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, company.CompanyName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range receiptColumns {
		ln := 0
		if i == len(receiptColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 7, col.title, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 8)
	for _, row := range company.Rows {
		o := row.Order
		values := []string{
			fmt.Sprintf("%d", o.SrNo),
			o.Name,
			o.Size,
			utils.OrDash(o.Grade),
			fmt.Sprintf("%d", o.BoxNumber),
			utils.FormatNumber(row.Figures.SqftFactor),
			utils.Money(derefOrZero(row.Params.Rate)),
			utils.Money(derefOrZero(row.Params.BillRate)),
			utils.FormatNumber(derefOrZero(row.Params.Insu)) + "%",
			utils.FormatNumber(derefOrZero(row.Params.Tax)) + "%",
			utils.Money(row.Figures.BillAmount),
			utils.Money(row.Figures.CashRate),
			utils.Money(row.Figures.CashAmount),
		}
		for i, v := range values {
			ln := 0
			if i == len(values)-1 {
				ln = 1
			}
			col := receiptColumns[i]
			pdf.CellFormat(col.width, 6, v, "1", ln, col.align, false, 0, "")
		}
	}

	pdf.SetFont("Arial", "B", 9)
	t := company.Totals
	summary := fmt.Sprintf("Boxes: %s    Bill: %s    Cash: %s    Total: %s",
		utils.FormatNumber(t.TotalBox), rupees(t.TotalBillAmount), rupees(t.TotalCashAmount), rupees(company.FinalTotal))
	pdf.CellFormat(tableWidth(), 7, summary, "1", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, view *services.InvoiceView) {
	lines := [][2]string{
		{"Total Bill", rupees(view.GrandTotals.TotalBillAmount)},
		{"Total Cash", rupees(view.GrandTotals.TotalCashAmount)},
		{"Grand Total", rupees(view.FinalTotal)},
	}
	labelW := tableWidth() - 45
	for _, l := range lines {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(labelW, 8, l[0]+":", "", 0, "R", false, 0, "")
		pdf.CellFormat(45, 8, l[1], "", 1, "R", false, 0, "")
	}
}

func tableWidth() float64 {
	var w float64
	for _, col := range receiptColumns {
		w += col.width
	}
	return w
}

func derefOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
