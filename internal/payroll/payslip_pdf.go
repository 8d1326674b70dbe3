package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const payslipCompanyName = "Valour Technologies Pvt. Ltd."

// renderPayslip writes the payslip PDF under dir/payslips and returns the file
// path. The file name derives from the formatted employee id with the slashes
// flattened, e.g. VT-DEV-2026-0101_November_2026.pdf.
func renderPayslip(p *Payroll, dir string) (string, error) {
	outDir := filepath.Join(dir, "payslips")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create payslip dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%d.pdf",
		strings.ReplaceAll(p.FormattedEmployeeID, "/", "-"),
		p.Month,
		p.Year,
	)
	path := filepath.Join(outDir, name)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, payslipCompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("PAYSLIP - %s %d", p.Month, p.Year), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	employeeName := ""
	designation := ""
	if p.Employee != nil {
		employeeName = p.Employee.FullName
		designation = p.Employee.Designation
	}
	payslipRow(pdf, "Employee ID", p.FormattedEmployeeID)
	payslipRow(pdf, "Name", employeeName)
	payslipRow(pdf, "Designation", designation)
	payslipRow(pdf, "Pay Period", fmt.Sprintf("%s %d", p.Month, p.Year))
	payslipRow(pdf, "Status", p.Status)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Earnings", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	payslipAmountRow(pdf, "Basic", p.Basic)
	payslipAmountRow(pdf, "HRA", p.HRA)
	payslipAmountRow(pdf, "DA", p.DA)
	payslipAmountRow(pdf, "Special Allowance", p.SpecialAllowance)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Deductions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	payslipAmountRow(pdf, "Employer PF", p.EmployerPF)
	payslipAmountRow(pdf, "TDS", p.TDS)
	payslipAmountRow(pdf, "Absence Deductions", p.AbsenceDeductions)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	payslipAmountRow(pdf, "Total Earnings", p.TotalEarnings)
	payslipAmountRow(pdf, "Total Deductions", p.TotalDeductions)
	pdf.SetFont("Arial", "B", 11)
	payslipAmountRow(pdf, "Net Salary", p.NetSalary)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write payslip: %w", err)
	}
	return path, nil
}

func payslipRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func payslipAmountRow(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Rs. %d", amount), "", 1, "R", false, 0, "")
}
