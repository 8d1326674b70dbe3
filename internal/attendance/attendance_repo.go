package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type StatusCounts struct {
	Present int
	Absent  int
	Leave   int
}

func (c StatusCounts) Total() int {
	return c.Present + c.Absent + c.Leave
}

type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	FindAll(ctx context.Context) ([]Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	CountByStatus(ctx context.Context, employeeID string, from, to time.Time) (StatusCounts, error)
	CountAbsent(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Order("attendance_date DESC, employee_id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) CountByStatus(ctx context.Context, employeeID string, from, to time.Time) (StatusCounts, error) {
	rows := []struct {
		Status string
		N      int
	}{}
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select("status, COUNT(*) AS n").
		Where("employee_id = ? AND attendance_date BETWEEN ? AND ?", employeeID, from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case StatusPresent:
			counts.Present = row.N
		case StatusAbsent:
			counts.Absent = row.N
		case StatusLeave:
			counts.Leave = row.N
		}
	}
	return counts, nil
}

func (r *repository) CountAbsent(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("employee_id = ? AND status = ? AND attendance_date BETWEEN ? AND ?",
			employeeID, StatusAbsent, from, to).
		Count(&n).Error
	return int(n), err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Attendance{}, "id = ?", id).Error
}
