package reports

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/vitornoms1/FinanceManager/internal/auth"
	"github.com/vitornoms1/FinanceManager/internal/period"
)

// Statement renders the period's activity as a downloadable PDF.
func (h *Handler) Statement(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	p, err := period.Parse(c.Query("month"), c.Query("year"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	st, err := h.load(c.UserContext(), userID, p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed statement: "+err.Error())
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly statement "+p.String(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Monthly statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Period: "+p.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Income: %.2f", st.Income), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(30, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(92, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range st.Rows {
		pdf.CellFormat(30, 7, r.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, r.Kind, "1", 0, "L", false, 0, "")
		pdf.CellFormat(92, 7, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", r.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total spending: %.2f", st.Spending), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Remaining: %.2f", st.Income-st.Spending), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render pdf: "+err.Error())
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="statement-`+p.String()+`.pdf"`)
	return c.Send(buf.Bytes())
}
