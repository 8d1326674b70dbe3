package payroll

import (
	"time"

	"vthr/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusGenerated = "Generated"
	StatusPaid      = "Paid"
)

// Payroll stores the full salary breakup per employee and period. Month is the
// textual month name ("November"); callers querying by period must use the
// same convention. All amounts are whole rupees.
type Payroll struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period,priority:1"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	FormattedEmployeeID string `gorm:"column:formatted_employee_id;type:varchar(40);not null"`
	Month               string `gorm:"type:varchar(10);not null;uniqueIndex:uq_payroll_employee_period,priority:2"`
	Year                int    `gorm:"not null;uniqueIndex:uq_payroll_employee_period,priority:3"`

	CTC               int64 `gorm:"column:ctc;not null"`
	Basic             int64 `gorm:"not null"`
	HRA               int64 `gorm:"column:hra;not null"`
	DA                int64 `gorm:"column:da;not null"`
	SpecialAllowance  int64 `gorm:"not null"`
	EmployerPF        int64 `gorm:"column:employer_pf;not null"`
	TDS               int64 `gorm:"column:tds;not null"`
	AbsenceDeductions int64 `gorm:"not null"`
	TotalEarnings     int64 `gorm:"not null"`
	TotalDeductions   int64 `gorm:"not null"`
	GrossSalary       int64 `gorm:"not null"`
	NetSalary         int64 `gorm:"not null"`

	Status     string `gorm:"type:varchar(10);not null;default:'Generated'"`
	PayslipURL string `gorm:"column:payslip_url;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusGenerated, StatusPaid:
		return true
	}
	return false
}

// MonthName maps a numeric month (1..12) to the persisted textual form.
func MonthName(month int) string {
	return time.Month(month).String()
}
