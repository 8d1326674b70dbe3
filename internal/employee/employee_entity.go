package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive = "Active"
	StatusLeft   = "Left"
)

type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// EmployeeID is the VT-prefixed business id (VT000101); EmployeeNumber is
	// its numeric suffix, kept separately for payslip id formatting.
	EmployeeID     string `gorm:"type:varchar(8);not null;uniqueIndex:uq_employee_business_id"`
	EmployeeNumber int64  `gorm:"type:bigint;not null"`

	FullName    string `gorm:"type:varchar(120);not null"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone       string `gorm:"type:varchar(20)"`
	Designation string `gorm:"type:varchar(80)"`
	Department  string `gorm:"type:varchar(80)"`
	Role        string `gorm:"type:varchar(30);not null;default:'DEV'"`

	JoiningDate time.Time  `gorm:"type:date;not null"`
	LeavingDate *time.Time `gorm:"type:date"`

	CurrentCTC int64  `gorm:"type:bigint;not null;default:0"`
	Status     string `gorm:"type:varchar(10);not null;default:'Active'"`

	// Per-category remaining leave days. Only the leave ledger writes these
	// after onboarding; the check constraint keeps them non-negative.
	CasualBalance int `gorm:"type:int;not null;default:10"`
	SickBalance   int `gorm:"type:int;not null;default:5"`
	EarnedBalance int `gorm:"type:int;not null;default:7"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
