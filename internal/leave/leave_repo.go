package leave

import (
	"context"
	"fmt"
	"time"

	"vthr/internal/employee"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Balances struct {
	Casual int
	Sick   int
	Earned int
}

func (b Balances) Get(c Category) int {
	switch c {
	case CategorySick:
		return b.Sick
	case CategoryEarned:
		return b.Earned
	default:
		return b.Casual
	}
}

// Repository runs ledger mutations inside Transaction so the balance write and
// the status write commit or roll back as one unit.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindApprovedOverlapping(ctx context.Context, from, to time.Time) ([]Leave, error)
	FindApprovedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
	EmployeeSummary(ctx context.Context, employeeID string) (*employee.Employee, error)
	BalanceForUpdate(ctx context.Context, employeeID string, cat Category) (int, error)
	SetBalance(ctx context.Context, employeeID string, cat Category, value int) error
	Balances(ctx context.Context, employeeID string) (Balances, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

// FindByIDForUpdate locks the leave row so concurrent status changes on the
// same leave serialize.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedOverlapping(ctx context.Context, from, to time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ? AND from_date <= ? AND to_date >= ?", StatusApproved, to, from).
		Order("from_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ? AND from_date <= ? AND to_date >= ?",
			employeeID, StatusApproved, to, from).
		Order("from_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) EmployeeSummary(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}

// BalanceForUpdate locks the employee row, which is what serializes
// read-modify-write of a balance bucket across concurrent transitions.
func (r *repository) BalanceForUpdate(ctx context.Context, employeeID string, cat Category) (int, error) {
	var value int
	query := fmt.Sprintf("SELECT %s FROM employees WHERE id = ? AND deleted_at IS NULL FOR UPDATE", cat.Column())
	err := r.db.WithContext(ctx).Raw(query, employeeID).Scan(&value).Error
	return value, err
}

func (r *repository) SetBalance(ctx context.Context, employeeID string, cat Category, value int) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		UpdateColumn(cat.Column(), value).Error
}

func (r *repository) Balances(ctx context.Context, employeeID string) (Balances, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		Select("casual_balance", "sick_balance", "earned_balance").
		First(&e, "id = ?", employeeID).Error
	if err != nil {
		return Balances{}, err
	}
	return Balances{
		Casual: e.CasualBalance,
		Sick:   e.SickBalance,
		Earned: e.EarnedBalance,
	}, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}
