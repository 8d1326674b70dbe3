package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. EmployeeID links an account to its directory
// record; admin and service accounts may have none.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(10);not null;default:'employee'"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

func IsValidRole(role string) bool {
	switch role {
	case "admin", "hr", "employee":
		return true
	}
	return false
}
