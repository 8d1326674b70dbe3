package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vthr/internal/config"
	"vthr/internal/employee"
	"vthr/internal/events"
	"vthr/internal/leave"
	"vthr/internal/messaging/kafka"
	payrollerrors "vthr/internal/payroll/errors"
	"vthr/internal/shared/apperror"
	"vthr/internal/shared/contextutil"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the employee repository payroll needs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// AttendanceSource supplies the absent-day count for a month window.
type AttendanceSource interface {
	CountAbsent(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}

// LeaveSource supplies approved leaves overlapping a month window.
type LeaveSource interface {
	FindApprovedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error)
}

type Service interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdatePayrollStatusRequest) (PayrollResponse, error)
	GeneratePayslip(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeDirectory
	attendance AttendanceSource
	leaves     LeaveSource
	outbox     kafka.OutboxRepository
	validator  *validation.Validator
	calc       *Calculator
	policy     config.PayrollPolicy
	docDir     string
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	attendance AttendanceSource,
	leaves LeaveSource,
	outboxRepo kafka.OutboxRepository,
	validator *validation.Validator,
	policy config.PayrollPolicy,
	documentDir string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		attendance: attendance,
		leaves:     leaves,
		outbox:     outboxRepo,
		validator:  validator,
		calc:       NewCalculator(policy),
		policy:     policy,
		docDir:     documentDir,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if violations := s.validator.ValidatePayrollData(validation.PayrollData{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		CTC:        req.CTC,
	}); len(violations) > 0 {
		return PayrollResponse{}, apperror.NewValidationFailed(violations)
	}

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create payroll load employee failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	absentDays, err := s.attendance.CountAbsent(ctx, empl.EmployeeID, first, last)
	if err != nil {
		s.logger.Error("create payroll count absences failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	unpaidLeaveDays := 0
	if s.policy.CountPaidLeaveInDeductions {
		unpaidLeaveDays, err = s.approvedLeaveDays(ctx, empl.ID.String(), first, last)
		if err != nil {
			s.logger.Error("create payroll count leave days failed", zap.Error(err))
			return PayrollResponse{}, err
		}
	}

	breakdown := s.calc.Compute(Inputs{
		CTC:             req.CTC,
		DaysInMonth:     last.Day(),
		AbsentDays:      absentDays,
		UnpaidLeaveDays: unpaidLeaveDays,
	})

	monthName := MonthName(req.Month)
	record := &Payroll{
		ID:                  uuid.New(),
		EmployeeID:          empl.ID,
		FormattedEmployeeID: formatEmployeeID(empl, req.Year),
		Month:               monthName,
		Year:                req.Year,
		CTC:                 req.CTC,
		Basic:               breakdown.Basic,
		HRA:                 breakdown.HRA,
		DA:                  breakdown.DA,
		SpecialAllowance:    breakdown.SpecialAllowance,
		EmployerPF:          breakdown.EmployerPF,
		TDS:                 breakdown.TDS,
		AbsenceDeductions:   breakdown.AbsenceDeductions,
		TotalEarnings:       breakdown.TotalEarnings,
		TotalDeductions:     breakdown.TotalDeductions,
		GrossSalary:         breakdown.GrossSalary,
		NetSalary:           breakdown.NetSalary,
		Status:              StatusGenerated,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, record); err != nil {
		// The unique constraint, not a prior read, is what guards the period.
		if isDuplicatePeriod(err) {
			return PayrollResponse{}, payrollerrors.NewDuplicatePayroll(empl.FullName, monthName, req.Year)
		}
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollPayslipRequestedEvent{
			EventType:  "payroll_payslip_requested",
			RequestID:  rid,
			PayrollID:  record.ID.String(),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   record.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollPayslipRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create payroll outbox persist failed",
				zap.String("payroll_id", record.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("create payroll success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
		zap.String("month", monthName),
		zap.Int("year", req.Year),
		zap.Int64("net_salary", record.NetSalary),
	)

	record.Employee = empl
	return mapToResponse(*record), nil
}

// approvedLeaveDays sums the inclusive day overlap of each approved leave with
// the month window. A leave spanning month boundaries only counts the days
// inside the window.
func (s *service) approvedLeaveDays(ctx context.Context, employeeID string, first, last time.Time) (int, error) {
	leaves, err := s.leaves.FindApprovedForEmployee(ctx, employeeID, first, last)
	if err != nil {
		return 0, err
	}

	days := 0
	for _, l := range leaves {
		from := l.FromDate
		if from.Before(first) {
			from = first
		}
		to := l.ToDate
		if to.After(last) {
			to = last
		}
		if !to.Before(from) {
			days += leave.InclusiveDays(from, to)
		}
	}
	return days, nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all payrolls failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get payrolls by employee failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

// UpdateStatus moves a payroll between Generated and Paid. Paid is terminal;
// repeating the current status is a no-op.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdatePayrollStatusRequest) (PayrollResponse, error) {
	if !IsValidStatus(req.Status) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatus
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if record.Status == StatusPaid && req.Status == StatusGenerated {
		return PayrollResponse{}, payrollerrors.ErrAlreadyPaid
	}

	if record.Status != req.Status {
		if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
			s.logger.Error("update payroll status failed", zap.String("payroll_id", id), zap.Error(err))
			return PayrollResponse{}, err
		}
		record.Status = req.Status
		s.logger.Info("update payroll status success",
			zap.String("payroll_id", id),
			zap.String("status", req.Status),
		)
	}

	return mapToResponse(*record), nil
}

// GeneratePayslip renders the payslip PDF for a payroll and records where it
// was stored. Rendering is idempotent; regenerating overwrites the file.
func (s *service) GeneratePayslip(ctx context.Context, id string) (PayrollResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	path, err := renderPayslip(record, s.docDir)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := s.repo.UpdatePayslipURL(ctx, id, path); err != nil {
		s.logger.Error("update payslip url failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	record.PayslipURL = path

	s.logger.Info("generate payslip success",
		zap.String("payroll_id", id),
		zap.String("path", path),
	)

	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		s.logger.Error("delete payroll failed", zap.String("payroll_id", id), zap.Error(err))
		return err
	}
	return nil
}

// formatEmployeeID builds the payslip-facing id, e.g. "VT/DEV/2026/0101".
func formatEmployeeID(empl *employee.Employee, year int) string {
	role := empl.Role
	if role == "" {
		role = "DEV"
	}
	return fmt.Sprintf("VT/%s/%d/%04d", role, year, empl.EmployeeNumber)
}

func isDuplicatePeriod(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_employee_period"
	}
	return strings.Contains(err.Error(), "uq_payroll_employee_period")
}
