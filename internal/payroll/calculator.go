package payroll

import (
	"vthr/internal/config"

	"github.com/shopspring/decimal"
)

// Inputs is everything the salary computation depends on. Two calls with equal
// Inputs always produce the same Breakdown.
type Inputs struct {
	CTC             int64
	DaysInMonth     int
	AbsentDays      int
	UnpaidLeaveDays int
}

// Breakdown is the computed salary split. MonthlyBasic and the proration
// inputs are kept alongside the persisted figures so payslips can show them.
type Breakdown struct {
	MonthlyBasic      int64
	Basic             int64
	HRA               int64
	DA                int64
	SpecialAllowance  int64
	EmployerPF        int64
	TDS               int64
	AbsenceDeductions int64
	TotalEarnings     int64
	TotalDeductions   int64
	GrossSalary       int64
	NetSalary         int64
}

// Calculator derives the monthly salary breakup from annual CTC. Every
// intermediate figure is rounded half away from zero before it feeds the next
// step; rounding only the totals produces different payslip numbers.
type Calculator struct {
	policy config.PayrollPolicy
}

func NewCalculator(policy config.PayrollPolicy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Compute(in Inputs) Breakdown {
	twelve := decimal.NewFromInt(12)
	ctc := decimal.NewFromInt(in.CTC)
	workingDays := decimal.NewFromInt(int64(c.policy.WorkingDaysPerMonth))
	daysInMonth := decimal.NewFromInt(int64(in.DaysInMonth))

	monthlyBasic := ctc.
		Mul(decimal.NewFromFloat(c.policy.BasicPct)).
		Div(twelve).
		Round(0)

	// Proration scales by the working-days constant over calendar days, not by
	// days actually worked.
	basic := monthlyBasic.Mul(workingDays).Div(daysInMonth).Round(0)

	hra := basic.Mul(decimal.NewFromFloat(c.policy.HRAPct)).Round(0)
	da := basic.Mul(decimal.NewFromFloat(c.policy.DAPct)).Round(0)
	employerPF := basic.Mul(decimal.NewFromFloat(c.policy.EmployerPFPct)).Round(0)

	specialAllowance := ctc.
		Sub(basic.Add(hra).Add(da).Add(employerPF)).
		Div(twelve).
		Round(0)

	// The daily rate stays unrounded; only the deduction total is.
	dailyRate := monthlyBasic.Div(workingDays)
	missedDays := decimal.NewFromInt(int64(in.AbsentDays + in.UnpaidLeaveDays))
	absenceDeductions := missedDays.Mul(dailyRate).Round(0)

	tds := ctc.Mul(decimal.NewFromFloat(c.policy.TDSPct)).Div(twelve).Round(0)

	totalEarnings := basic.Add(hra).Add(da).Add(specialAllowance)
	totalDeductions := tds.Add(employerPF).Add(absenceDeductions)
	netSalary := totalEarnings.Sub(totalDeductions)

	return Breakdown{
		MonthlyBasic:      monthlyBasic.IntPart(),
		Basic:             basic.IntPart(),
		HRA:               hra.IntPart(),
		DA:                da.IntPart(),
		SpecialAllowance:  specialAllowance.IntPart(),
		EmployerPF:        employerPF.IntPart(),
		TDS:               tds.IntPart(),
		AbsenceDeductions: absenceDeductions.IntPart(),
		TotalEarnings:     totalEarnings.IntPart(),
		TotalDeductions:   totalDeductions.IntPart(),
		GrossSalary:       totalEarnings.IntPart(),
		NetSalary:         netSalary.IntPart(),
	}
}
