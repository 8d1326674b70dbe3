package leave

import (
	"time"

	"vthr/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Leave struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`
	LeaveType  string             `gorm:"type:varchar(10);not null"`
	SubType    string             `gorm:"column:leave_sub_type;type:varchar(40)"`
	FromDate   time.Time          `gorm:"type:date;not null"`
	ToDate     time.Time          `gorm:"type:date;not null"`
	TotalDays  int                `gorm:"not null;default:1"`
	Reason     string             `gorm:"type:text"`
	Status     string             `gorm:"type:varchar(10);not null;default:'Pending'"`
	AppliedOn  time.Time          `gorm:"autoCreateTime"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Leave) TableName() string {
	return "leaves"
}

// InclusiveDays counts both endpoints, so a single-day leave is 1 day.
func InclusiveDays(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
