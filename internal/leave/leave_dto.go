package leave

import "vthr/internal/employee"

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	FromDate   string `json:"from_date" binding:"required"`
	ToDate     string `json:"to_date" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	LeaveType    string `json:"leave_type"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	TotalDays    int    `json:"total_days"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// EmployeeBalanceSummary rides along on status-change responses so the client
// sees the post-transition balances without a second request.
type EmployeeBalanceSummary struct {
	FullName     string                    `json:"full_name"`
	LeaveBalance employee.LeaveBalanceView `json:"leave_balance"`
}

type StatusChangeResponse struct {
	Leave    LeaveResponse           `json:"leave"`
	Employee *EmployeeBalanceSummary `json:"employee,omitempty"`
}
