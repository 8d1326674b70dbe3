package offerletter

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusGenerated = "Generated"
	StatusIssued    = "Issued"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
)

// OfferLetter is a pre-onboarding document; it is not linked to an employee
// record because the candidate does not exist in the directory yet.
// EmployeeAddress stores newline-joined address lines.
type OfferLetter struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EmployeeName    string `gorm:"type:varchar(120);not null"`
	RelationPrefix  string `gorm:"type:varchar(10)"`
	FatherName      string `gorm:"type:varchar(120)"`
	EmployeeAddress string `gorm:"type:text"`

	Designation string    `gorm:"type:varchar(80);not null"`
	JoiningDate time.Time `gorm:"type:date;not null"`

	Basic            int64 `gorm:"not null;default:0"`
	HRA              int64 `gorm:"column:hra;not null;default:0"`
	DA               int64 `gorm:"column:da;not null;default:0"`
	SpecialAllowance int64 `gorm:"not null;default:0"`
	TDS              int64 `gorm:"column:tds;not null;default:0"`
	OfferedCTC       int64 `gorm:"column:offered_ctc;not null"`

	PDFURL string `gorm:"column:pdf_url;type:text"`
	Status string `gorm:"type:varchar(10);not null;default:'Generated'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OfferLetter) TableName() string {
	return "offer_letters"
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusGenerated, StatusIssued, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
