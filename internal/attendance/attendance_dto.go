package attendance

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
	InTime     string `json:"in_time"`
	OutTime    string `json:"out_time"`
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	InTime       string `json:"in_time,omitempty"`
	OutTime      string `json:"out_time,omitempty"`
}

type MonthlyReportRow struct {
	EmployeeID           string  `json:"employee_id"`
	Name                 string  `json:"name"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Leave                int     `json:"leave"`
	TotalWorkingDays     int     `json:"total_working_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type MonthlyReportResponse struct {
	Month             int                `json:"month"`
	Year              int                `json:"year"`
	Report            []MonthlyReportRow `json:"report"`
	AverageAttendance float64            `json:"average_attendance"`
}

type ImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors,omitempty"`
}
