package offerletter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const letterCompanyName = "Valour Technologies Pvt. Ltd."

// renderOfferLetter writes the letter PDF under dir/offerletters and returns
// the file path. The file name derives from the candidate name with spaces
// collapsed, e.g. Asha_Verma_OfferLetter.pdf.
func renderOfferLetter(o *OfferLetter, dir string) (string, error) {
	outDir := filepath.Join(dir, "offerletters")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create offer letter dir: %w", err)
	}

	safeName := strings.Join(strings.Fields(o.EmployeeName), "_")
	path := filepath.Join(outDir, safeName+"_OfferLetter.pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, letterCompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "BU", 14)
	pdf.CellFormat(0, 9, "OFFER LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, "To,", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, o.EmployeeName, "", 1, "L", false, 0, "")
	if o.RelationPrefix != "" && o.FatherName != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s %s", o.RelationPrefix, o.FatherName), "", 1, "L", false, 0, "")
	}
	if o.EmployeeAddress != "" {
		for _, line := range strings.Split(o.EmployeeAddress, "\n") {
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subject: Appointment as %s", o.Designation), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Dear %s,", o.EmployeeName), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"We are pleased to offer you the position of %s at %s. "+
			"Your joining date will be %s, and your total compensation (CTC) will be Rs. %d per annum.",
		o.Designation, letterCompanyName, o.JoiningDate.Format("02 Jan 2006"), o.OfferedCTC,
	), "", "L", false)
	pdf.Ln(4)

	if o.Basic > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Monthly Salary Breakup", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		letterAmountRow(pdf, "Basic", o.Basic)
		letterAmountRow(pdf, "HRA", o.HRA)
		letterAmountRow(pdf, "DA", o.DA)
		letterAmountRow(pdf, "Special Allowance", o.SpecialAllowance)
		letterAmountRow(pdf, "TDS", o.TDS)
		pdf.Ln(4)
	}

	pdf.MultiCell(0, 6, "We look forward to welcoming you to our organization and believe your contribution will be valuable.", "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 6, "Please sign and return this letter to confirm your acceptance.", "", "L", false)
	pdf.Ln(10)

	pdf.CellFormat(0, 6, "Sincerely,", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "HR Manager", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, letterCompanyName, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, "This is a computer-generated document and does not require a signature.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write offer letter: %w", err)
	}
	return path, nil
}

func letterAmountRow(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Rs. %d", amount), "", 1, "R", false, 0, "")
}
