package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLeave   = "Leave"
)

// Attendance references the employee by business id, one row per employee and
// date. In and out times are optional HH:MM strings.
type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(8);not null;index"`
	Date       time.Time `gorm:"column:attendance_date;type:date;not null"`
	Status     string    `gorm:"type:varchar(10);not null"`
	InTime     string    `gorm:"type:varchar(5)"`
	OutTime    string    `gorm:"type:varchar(5)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}
