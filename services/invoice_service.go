// services/invoice_service.go
package services

import (
	"bytes"
	"fmt"

	"lawncare-backend/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateInvoicePDF renders an invoice for a completed payment. The caller
// is responsible for checking the payment status first.
func GenerateInvoicePDF(payment *models.Payment, appointment *models.Appointment, customer *models.User, property *models.Property) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "GreenLawn Care Services")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	if payment.InvoiceNumber != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Invoice %s", *payment.InvoiceNumber))
		pdf.Ln(6)
	}
	if payment.PaidAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Paid on %s", payment.PaidAt.Format("January 2, 2006")))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Bill-to block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed To")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, customer.FullName())
	pdf.Ln(6)
	pdf.Cell(0, 6, customer.Email)
	pdf.Ln(6)
	if property != nil {
		pdf.Cell(0, 6, fmt.Sprintf("%s, %s, %s %s", property.Address, property.City, property.State, property.ZipCode))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Line items
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if appointment != nil {
		packageName := "Lawn care service"
		if appointment.ServicePackage != nil {
			packageName = appointment.ServicePackage.Name
		}
		packageTotal := appointment.TotalPrice
		for _, item := range appointment.Services {
			packageTotal = packageTotal.Sub(item.Subtotal())
		}
		pdf.CellFormat(130, 8, fmt.Sprintf("%s - %s", packageName, appointment.ScheduledDate.Format("Jan 2, 2006")), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, "$"+packageTotal.StringFixed(2), "1", 1, "R", false, 0, "")

		for _, item := range appointment.Services {
			name := "Add-on service"
			if item.Service != nil {
				name = item.Service.Name
			}
			if item.Quantity > 1 {
				name = fmt.Sprintf("%s x%d", name, item.Quantity)
			}
			pdf.CellFormat(130, 8, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 8, "$"+item.Subtotal().StringFixed(2), "1", 1, "R", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Total Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "$"+payment.Amount.StringFixed(2), "1", 1, "R", false, 0, "")

	if payment.Last4 != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Paid with %s ending in %s", payment.CardBrand, payment.Last4))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
