package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	attendanceerrors "vthr/internal/attendance/errors"
	"vthr/internal/employee"
	"vthr/internal/shared/apperror"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const attendanceDateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	MonthlyReport(ctx context.Context, month, year int) (MonthlyReportResponse, error)
	ImportCSV(ctx context.Context, records [][]string) (ImportResult, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	validator *validation.Validator
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, validator *validation.Validator, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, employees: employees, validator: validator, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	s.logger.Debug("create attendance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	a, err := s.buildValidated(ctx, req)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create attendance success",
		zap.String("employee_id", a.EmployeeID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*a, ""), nil
}

// buildValidated runs the aggregate field checks, then the employee existence
// check, and returns a ready-to-persist row.
func (s *service) buildValidated(ctx context.Context, req CreateAttendanceRequest) (*Attendance, error) {
	violations := s.validator.ValidateAttendanceData(validation.AttendanceData{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		InTime:     req.InTime,
		OutTime:    req.OutTime,
	})
	if len(violations) > 0 {
		s.logger.Warn("create attendance validation failed", zap.Strings("violations", violations))
		return nil, apperror.NewValidationFailed(violations)
	}

	if _, err := s.employees.FindByBusinessID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewValidationFailed([]string{
				fmt.Sprintf("Employee ID %s does not exist.", req.EmployeeID),
			})
		}
		return nil, err
	}

	date, _ := time.Parse(attendanceDateLayout, req.Date)
	return &Attendance{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		InTime:     req.InTime,
		OutTime:    req.OutTime,
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// One directory pass instead of a lookup per row.
	names := map[string]string{}
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		names[e.EmployeeID] = e.FullName
	}

	resp := make([]AttendanceResponse, len(records))
	for i, a := range records {
		resp[i] = mapToResponse(a, names[a.EmployeeID])
	}
	return resp, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]AttendanceResponse, len(records))
	for i, a := range records {
		resp[i] = mapToResponse(a, "")
	}
	return resp, nil
}

// MonthlyReport covers every Active employee in insertion order. An employee
// with no rows for the month reports zero percent and is excluded from the
// average.
func (s *service) MonthlyReport(ctx context.Context, month, year int) (MonthlyReportResponse, error) {
	if month < 1 || month > 12 || year == 0 {
		return MonthlyReportResponse{}, apperror.NewValidationFailed([]string{"Month and year are required"})
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	employees, err := s.employees.FindActive(ctx)
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	report := make([]MonthlyReportRow, 0, len(employees))
	var sum float64
	var counted int
	for _, e := range employees {
		counts, err := s.repo.CountByStatus(ctx, e.EmployeeID, first, last)
		if err != nil {
			return MonthlyReportResponse{}, err
		}

		total := counts.Total()
		var pct float64
		if total > 0 {
			pct = round2(float64(counts.Present) / float64(total) * 100)
			sum += pct
			counted++
		}

		report = append(report, MonthlyReportRow{
			EmployeeID:           e.EmployeeID,
			Name:                 e.FullName,
			Present:              counts.Present,
			Absent:               counts.Absent,
			Leave:                counts.Leave,
			TotalWorkingDays:     total,
			AttendancePercentage: pct,
		})
	}

	var avg float64
	if counted > 0 {
		avg = round2(sum / float64(counted))
	}

	return MonthlyReportResponse{
		Month:             month,
		Year:              year,
		Report:            report,
		AverageAttendance: avg,
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrDuplicateAttendance
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_attendance_employee_date") {
		return attendanceerrors.ErrDuplicateAttendance
	}
	return err
}

func mapToResponse(a Attendance, name string) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID,
		EmployeeName: name,
		Date:         a.Date.Format(attendanceDateLayout),
		Status:       a.Status,
		InTime:       a.InTime,
		OutTime:      a.OutTime,
	}
}
