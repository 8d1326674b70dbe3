package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"vthr/internal/attendance"
	attendanceerrors "vthr/internal/attendance/errors"
	"vthr/internal/employee"
	"vthr/internal/shared/apperror"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	createFn        func(ctx context.Context, a *attendance.Attendance) error
	findAllFn       func(ctx context.Context) ([]attendance.Attendance, error)
	findByEmployee  func(ctx context.Context, employeeID string) ([]attendance.Attendance, error)
	countByStatusFn func(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatusCounts, error)
	countAbsentFn   func(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	if f.findByEmployee != nil {
		return f.findByEmployee(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) CountByStatus(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatusCounts, error) {
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx, employeeID, from, to)
	}
	return attendance.StatusCounts{}, nil
}

func (f *fakeAttendanceRepository) CountAbsent(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	if f.countAbsentFn != nil {
		return f.countAbsentFn(ctx, employeeID, from, to)
	}
	return 0, nil
}

func (f *fakeAttendanceRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeDirectory implements employee.Repository with a fixed roster.
type fakeDirectory struct {
	roster []employee.Employee
}

func (f *fakeDirectory) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeDirectory) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeDirectory) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.roster, nil
}
func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindByBusinessID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	for i := range f.roster {
		if f.roster[i].EmployeeID == employeeID {
			return &f.roster[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return f.roster, nil
}
func (f *fakeDirectory) FindActive(ctx context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, e := range f.roster {
		if e.Status == employee.StatusActive {
			active = append(active, e)
		}
	}
	return active, nil
}
func (f *fakeDirectory) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeDirectory) Delete(ctx context.Context, id string) error            { return nil }

func newAttendanceService(repo *fakeAttendanceRepository, dir *fakeDirectory) attendance.Service {
	return attendance.NewService(repo, dir, validation.New(10000, 10000000))
}

func roster() *fakeDirectory {
	return &fakeDirectory{roster: []employee.Employee{
		{ID: uuid.New(), EmployeeID: "VT000101", FullName: "Asha Verma", Status: employee.StatusActive},
		{ID: uuid.New(), EmployeeID: "VT000102", FullName: "Rohan Iyer", Status: employee.StatusActive},
		{ID: uuid.New(), EmployeeID: "VT000103", FullName: "Meera Nair", Status: employee.StatusLeft},
	}}
}

func TestAttendanceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}
		var created *attendance.Attendance
		repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		svc := newAttendanceService(repo, roster())
		resp, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID: "VT000101",
			Date:       "2026-03-02",
			Status:     attendance.StatusPresent,
			InTime:     "09:15",
			OutTime:    "18:05",
		})

		assert.NoError(t, err)
		assert.Equal(t, "VT000101", created.EmployeeID)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "09:15", resp.InTime)
	})

	t.Run("negative - violations collected in order", func(t *testing.T) {
		svc := newAttendanceService(&fakeAttendanceRepository{}, roster())

		_, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID: "EMP-1",
			Date:       "bad-date",
			Status:     "Holiday",
			InTime:     "25:00",
		})

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		rules, _ := appErr.Details.([]string)
		assert.Equal(t, []string{
			"Valid employee ID is required",
			"Valid date is required",
			"Invalid attendance status",
			"Invalid in-time format (HH:MM)",
		}, rules)
	})

	t.Run("negative - unknown employee", func(t *testing.T) {
		svc := newAttendanceService(&fakeAttendanceRepository{}, roster())

		_, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID: "VT000999",
			Date:       "2026-03-02",
			Status:     attendance.StatusPresent,
		})

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		rules, _ := appErr.Details.([]string)
		assert.Equal(t, []string{"Employee ID VT000999 does not exist."}, rules)
	})

	t.Run("negative - duplicate date maps to conflict", func(t *testing.T) {
		repo := &fakeAttendanceRepository{
			createFn: func(ctx context.Context, a *attendance.Attendance) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
			},
		}

		svc := newAttendanceService(repo, roster())
		_, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID: "VT000101",
			Date:       "2026-03-02",
			Status:     attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateAttendance)
	})
}

func TestAttendanceService_MonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("percentages and average", func(t *testing.T) {
		repo := &fakeAttendanceRepository{
			countByStatusFn: func(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatusCounts, error) {
				assert.Equal(t, "2026-03-01", from.Format("2006-01-02"))
				assert.Equal(t, "2026-03-31", to.Format("2006-01-02"))
				switch employeeID {
				case "VT000101":
					return attendance.StatusCounts{Present: 18, Absent: 2, Leave: 2}, nil
				default:
					return attendance.StatusCounts{}, nil
				}
			},
		}

		svc := newAttendanceService(repo, roster())
		resp, err := svc.MonthlyReport(ctx, 3, 2026)

		assert.NoError(t, err)
		// Left employees are excluded, Active ones keep insertion order.
		assert.Len(t, resp.Report, 2)
		assert.Equal(t, "VT000101", resp.Report[0].EmployeeID)
		assert.Equal(t, "VT000102", resp.Report[1].EmployeeID)

		assert.Equal(t, 22, resp.Report[0].TotalWorkingDays)
		assert.Equal(t, 81.82, resp.Report[0].AttendancePercentage)

		// No rows: zero percent, not an error, and excluded from the mean.
		assert.Equal(t, 0, resp.Report[1].TotalWorkingDays)
		assert.Equal(t, 0.0, resp.Report[1].AttendancePercentage)
		assert.Equal(t, 81.82, resp.AverageAttendance)
	})

	t.Run("no rows at all gives zero average", func(t *testing.T) {
		svc := newAttendanceService(&fakeAttendanceRepository{}, roster())

		resp, err := svc.MonthlyReport(ctx, 3, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 0.0, resp.AverageAttendance)
	})

	t.Run("negative - month out of range", func(t *testing.T) {
		svc := newAttendanceService(&fakeAttendanceRepository{}, roster())

		_, err := svc.MonthlyReport(ctx, 13, 2026)

		assert.Error(t, err)
	})
}

func TestAttendanceService_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed good and bad rows", func(t *testing.T) {
		var saved []string
		repo := &fakeAttendanceRepository{
			createFn: func(ctx context.Context, a *attendance.Attendance) error {
				saved = append(saved, a.EmployeeID)
				return nil
			},
		}

		svc := newAttendanceService(repo, roster())
		result, err := svc.ImportCSV(ctx, [][]string{
			{"employeeId", "date", "status", "inTime", "outTime"},
			{"VT000101", "2026-03-02", "Present", "09:00", "18:00"},
			{"VT000999", "2026-03-02", "Present", "", ""},
			{"VT000102", "2026-03-02", "Holiday", "", ""},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, []string{"VT000101"}, saved)
		assert.Len(t, result.Errors, 2)
		assert.Contains(t, result.Errors[0], "VT000999 does not exist")
		assert.Contains(t, result.Errors[1], "Invalid attendance status")
	})

	t.Run("negative - missing header", func(t *testing.T) {
		svc := newAttendanceService(&fakeAttendanceRepository{}, roster())

		_, err := svc.ImportCSV(ctx, [][]string{
			{"name", "date"},
			{"Asha", "2026-03-02"},
		})

		assert.Error(t, err)
	})
}
