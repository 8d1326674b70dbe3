package leave

import (
	"strings"

	leaveerrors "vthr/internal/leave/errors"
)

// Category is the closed set of leave balance buckets. Keeping it an enum
// instead of a string-keyed map means a typo in a category is a construction
// error, not a silent no-op against a missing key.
type Category int

const (
	CategoryCasual Category = iota
	CategorySick
	CategoryEarned
)

// ParseCategory case-folds a stored leave type ("Casual", "sick") into its
// balance bucket.
func ParseCategory(leaveType string) (Category, error) {
	switch strings.ToLower(leaveType) {
	case "casual":
		return CategoryCasual, nil
	case "sick":
		return CategorySick, nil
	case "earned":
		return CategoryEarned, nil
	}
	return 0, leaveerrors.NewInvalidLeaveType(leaveType)
}

// LeaveType is the capitalized wire form stored on Leave records.
func (c Category) LeaveType() string {
	switch c {
	case CategorySick:
		return "Sick"
	case CategoryEarned:
		return "Earned"
	default:
		return "Casual"
	}
}

// BalanceKey is the lowercase form used for balance mapping keys in responses.
func (c Category) BalanceKey() string {
	return strings.ToLower(c.LeaveType())
}

// Column is the employees table column holding this bucket's remaining days.
func (c Category) Column() string {
	switch c {
	case CategorySick:
		return "sick_balance"
	case CategoryEarned:
		return "earned_balance"
	default:
		return "casual_balance"
	}
}
