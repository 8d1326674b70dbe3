package employee

type CreateEmployeeRequest struct {
	EmployeeID  string `json:"employee_id"` // optional manual VT000001-style id
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	JoiningDate string `json:"joining_date" binding:"required"`
	LeavingDate string `json:"leaving_date"`
	CurrentCTC  int64  `json:"current_ctc" binding:"required"`
	Status      string `json:"status"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	JoiningDate string `json:"joining_date" binding:"required"`
	LeavingDate string `json:"leaving_date"`
	CurrentCTC  int64  `json:"current_ctc" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Left"`
}

// LeaveBalanceView keys are lowercase by contract even though leave types are
// capitalized on the wire.
type LeaveBalanceView struct {
	Casual int `json:"casual"`
	Sick   int `json:"sick"`
	Earned int `json:"earned"`
}

type EmployeeResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	EmployeeNumber int64            `json:"employee_number"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone,omitempty"`
	Designation    string           `json:"designation,omitempty"`
	Department     string           `json:"department,omitempty"`
	Role           string           `json:"role"`
	JoiningDate    string           `json:"joining_date"`
	LeavingDate    *string          `json:"leaving_date,omitempty"`
	CurrentCTC     int64            `json:"current_ctc"`
	Status         string           `json:"status"`
	LeaveBalance   LeaveBalanceView `json:"leave_balance"`
}
