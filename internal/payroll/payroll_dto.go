package payroll

import "time"

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Month      int    `json:"month" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	CTC        int64  `json:"ctc" binding:"required"`
}

type UpdatePayrollStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PayrollResponse struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employee_id"`
	EmployeeName        string    `json:"employee_name,omitempty"`
	Designation         string    `json:"designation,omitempty"`
	FormattedEmployeeID string    `json:"formatted_employee_id"`
	Month               string    `json:"month"`
	Year                int       `json:"year"`
	CTC                 int64     `json:"ctc"`
	Basic               int64     `json:"basic"`
	HRA                 int64     `json:"hra"`
	DA                  int64     `json:"da"`
	SpecialAllowance    int64     `json:"special_allowance"`
	EmployerPF          int64     `json:"employer_pf"`
	TDS                 int64     `json:"tds"`
	AbsenceDeductions   int64     `json:"absence_deductions"`
	TotalEarnings       int64     `json:"total_earnings"`
	TotalDeductions     int64     `json:"total_deductions"`
	GrossSalary         int64     `json:"gross_salary"`
	NetSalary           int64     `json:"net_salary"`
	Status              string    `json:"status"`
	PayslipURL          string    `json:"payslip_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:                  p.ID.String(),
		EmployeeID:          p.EmployeeID.String(),
		FormattedEmployeeID: p.FormattedEmployeeID,
		Month:               p.Month,
		Year:                p.Year,
		CTC:                 p.CTC,
		Basic:               p.Basic,
		HRA:                 p.HRA,
		DA:                  p.DA,
		SpecialAllowance:    p.SpecialAllowance,
		EmployerPF:          p.EmployerPF,
		TDS:                 p.TDS,
		AbsenceDeductions:   p.AbsenceDeductions,
		TotalEarnings:       p.TotalEarnings,
		TotalDeductions:     p.TotalDeductions,
		GrossSalary:         p.GrossSalary,
		NetSalary:           p.NetSalary,
		Status:              p.Status,
		PayslipURL:          p.PayslipURL,
		CreatedAt:           p.CreatedAt,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
		resp.Designation = p.Employee.Designation
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		resp = append(resp, mapToResponse(p))
	}
	return resp
}
