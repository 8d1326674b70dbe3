package validation

import (
	"fmt"
	"regexp"
	"time"
)

// Field validators are pure pass/fail predicates; the Validate* aggregates
// below collect every violated rule in order so callers can report the whole
// list at once instead of failing on the first problem.

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^[\+]?[0-9][\d]{7,15}$`)
	employeeIDRe = regexp.MustCompile(`^VT\d{6}$`)
	timeRe       = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

const dateLayout = "2006-01-02"

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidDate(dateStr string) bool {
	if dateStr == "" {
		return false
	}
	_, err := time.Parse(dateLayout, dateStr)
	return err == nil
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsValidEmployeeID checks the VT-prefixed six-digit business id used when an
// id is supplied manually instead of issued by the counter.
func IsValidEmployeeID(id string) bool {
	return employeeIDRe.MatchString(id)
}

// IsValidTime checks a 24h HH:MM clock value.
func IsValidTime(timeStr string) bool {
	return timeRe.MatchString(timeStr)
}

func IsValidLeaveType(leaveType string) bool {
	switch leaveType {
	case "Casual", "Sick", "Earned":
		return true
	}
	return false
}

func IsValidAttendanceStatus(status string) bool {
	switch status {
	case "Present", "Absent", "Leave":
		return true
	}
	return false
}

func IsValidEmployeeStatus(status string) bool {
	switch status {
	case "Active", "Left":
		return true
	}
	return false
}

// Validator carries the policy-configurable bounds; everything else is fixed
// format rules.
type Validator struct {
	CTCMin int64
	CTCMax int64
}

func New(ctcMin, ctcMax int64) *Validator {
	return &Validator{CTCMin: ctcMin, CTCMax: ctcMax}
}

func (v *Validator) IsValidCTC(ctc int64) bool {
	return ctc >= v.CTCMin && ctc <= v.CTCMax
}

type EmployeeData struct {
	Name        string
	Email       string
	Phone       string
	CurrentCTC  int64
	JoiningDate string
	LeavingDate string
	Status      string
}

func (v *Validator) ValidateEmployeeData(data EmployeeData) []string {
	var errs []string

	if len(data.Name) < 2 {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if !IsValidEmail(data.Email) {
		errs = append(errs, "Invalid email format")
	}
	if data.Phone != "" && !IsValidPhone(data.Phone) {
		errs = append(errs, "Invalid phone number format")
	}
	if !v.IsValidCTC(data.CurrentCTC) {
		errs = append(errs, fmt.Sprintf("CTC must be between %d and %d", v.CTCMin, v.CTCMax))
	}
	if !IsValidDate(data.JoiningDate) {
		errs = append(errs, "Valid joining date is required")
	}
	if data.LeavingDate != "" && !IsValidDate(data.LeavingDate) {
		errs = append(errs, "Invalid leaving date format")
	}
	if data.Status != "" && !IsValidEmployeeStatus(data.Status) {
		errs = append(errs, "Status must be 'Active' or 'Left'")
	}

	return errs
}

type AttendanceData struct {
	EmployeeID string
	Date       string
	Status     string
	InTime     string
	OutTime    string
}

func (v *Validator) ValidateAttendanceData(data AttendanceData) []string {
	var errs []string

	if !IsValidEmployeeID(data.EmployeeID) {
		errs = append(errs, "Valid employee ID is required")
	}
	if !IsValidDate(data.Date) {
		errs = append(errs, "Valid date is required")
	}
	if !IsValidAttendanceStatus(data.Status) {
		errs = append(errs, "Invalid attendance status")
	}
	if data.InTime != "" && !IsValidTime(data.InTime) {
		errs = append(errs, "Invalid in-time format (HH:MM)")
	}
	if data.OutTime != "" && !IsValidTime(data.OutTime) {
		errs = append(errs, "Invalid out-time format (HH:MM)")
	}

	return errs
}

type LeaveData struct {
	EmployeeID string
	LeaveType  string
	FromDate   string
	ToDate     string
}

func (v *Validator) ValidateLeaveData(data LeaveData) []string {
	var errs []string

	if data.EmployeeID == "" {
		errs = append(errs, "Valid employee ID is required")
	}
	if !IsValidLeaveType(data.LeaveType) {
		errs = append(errs, "Invalid leave type")
	}
	if !IsValidDate(data.FromDate) {
		errs = append(errs, "Valid from date is required")
	}
	if !IsValidDate(data.ToDate) {
		errs = append(errs, "Valid to date is required")
	}
	if IsValidDate(data.FromDate) && IsValidDate(data.ToDate) {
		from, _ := time.Parse(dateLayout, data.FromDate)
		to, _ := time.Parse(dateLayout, data.ToDate)
		if from.After(to) {
			errs = append(errs, "From date cannot be after to date")
		}
	}

	return errs
}

type PayrollData struct {
	EmployeeID string
	Month      int
	Year       int
	CTC        int64
}

func (v *Validator) ValidatePayrollData(data PayrollData) []string {
	var errs []string

	if data.EmployeeID == "" {
		errs = append(errs, "Employee ID is required")
	}
	if data.Month < 1 || data.Month > 12 || data.Year == 0 {
		errs = append(errs, "Month and year are required")
	}
	if !v.IsValidCTC(data.CTC) {
		errs = append(errs, "Valid CTC is required")
	}

	return errs
}

type OfferLetterData struct {
	EmployeeName string
	Designation  string
	JoiningDate  string
	OfferedCTC   int64
}

func (v *Validator) ValidateOfferLetterData(data OfferLetterData) []string {
	var errs []string

	if len(data.EmployeeName) < 2 {
		errs = append(errs, "Employee name is required")
	}
	if data.Designation == "" {
		errs = append(errs, "Designation is required")
	}
	if !IsValidDate(data.JoiningDate) {
		errs = append(errs, "Valid joining date is required")
	}
	if !v.IsValidCTC(data.OfferedCTC) {
		errs = append(errs, "Valid offered CTC is required")
	}

	return errs
}
