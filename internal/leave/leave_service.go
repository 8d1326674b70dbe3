package leave

import (
	"context"
	"errors"
	"time"

	"vthr/internal/employee"
	leaveerrors "vthr/internal/leave/errors"
	"vthr/internal/shared/apperror"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaveDateLayout = "2006-01-02"

type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	SetStatus(ctx context.Context, id, status string) (StatusChangeResponse, error)
	Delete(ctx context.Context, id string) error
	MonthCalendar(ctx context.Context, year int, month time.Month) (CalendarMonth, error)
	MonthCalendarICS(ctx context.Context, year int, month time.Month) (string, error)
}

type service struct {
	repo      Repository
	ledger    *Ledger
	validator *validation.Validator
	logger    *zap.Logger
}

func NewService(repo Repository, ledger *Ledger, validator *validation.Validator, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, ledger: ledger, validator: validator, logger: l}
}

// Apply records a Pending leave request. The balance is only checked here,
// never debited; the debit happens when the request is approved.
func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	if violations := s.validator.ValidateLeaveData(validation.LeaveData{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
	}); len(violations) > 0 {
		s.logger.Warn("apply leave validation failed", zap.Strings("violations", violations))
		return LeaveResponse{}, apperror.NewValidationFailed(violations)
	}

	cat, err := ParseCategory(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("employee_id")
	}

	fromDate, _ := time.Parse(leaveDateLayout, req.FromDate)
	toDate, _ := time.Parse(leaveDateLayout, req.ToDate)
	days := InclusiveDays(fromDate, toDate)

	var l *Leave
	err = s.repo.Transaction(ctx, func(qtx Repository) error {
		balances, err := qtx.Balances(ctx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrEmployeeNotFound
			}
			return err
		}

		available := balances.Get(cat)
		if available < days {
			s.logger.Warn("apply leave insufficient balance",
				zap.String("employee_id", req.EmployeeID),
				zap.String("category", cat.BalanceKey()),
				zap.Int("available", available),
				zap.Int("requested", days),
			)
			return leaveerrors.NewInsufficientBalance(cat.LeaveType(), available, days)
		}

		l = &Leave{
			ID:         uuid.New(),
			EmployeeID: employeeUUID,
			LeaveType:  cat.LeaveType(),
			FromDate:   fromDate,
			ToDate:     toDate,
			TotalDays:  days,
			Reason:     req.Reason,
			Status:     StatusPending,
		}
		return qtx.Create(ctx, l)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", days),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// SetStatus applies the status transition and its ledger effect as one
// transaction:
//
//	Pending/Rejected -> Approved  debit (floor at zero)
//	Approved -> Rejected          credit back
//	anything else                 status change only, balance untouched
func (s *service) SetStatus(ctx context.Context, id, status string) (StatusChangeResponse, error) {
	s.logger.Debug("set leave status requested",
		zap.String("leave_id", id),
		zap.String("target_status", status),
	)

	if !IsValidStatus(status) {
		return StatusChangeResponse{}, leaveerrors.ErrInvalidStatus
	}

	var (
		l    *Leave
		empl *employee.Employee
	)
	err := s.repo.Transaction(ctx, func(qtx Repository) error {
		var err error
		l, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}

		employeeID := l.EmployeeID.String()

		switch {
		case status == StatusApproved && l.Status != StatusApproved:
			cat, err := ParseCategory(l.LeaveType)
			if err != nil {
				return err
			}
			if _, err := s.ledger.Debit(ctx, qtx, employeeID, cat, l.TotalDays); err != nil {
				return err
			}
		case status == StatusRejected && l.Status == StatusApproved:
			cat, err := ParseCategory(l.LeaveType)
			if err != nil {
				return err
			}
			if _, err := s.ledger.Credit(ctx, qtx, employeeID, cat, l.TotalDays); err != nil {
				return err
			}
		}

		l.Status = status
		if err := qtx.Update(ctx, l); err != nil {
			return err
		}

		empl, err = qtx.EmployeeSummary(ctx, employeeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return StatusChangeResponse{}, err
	}

	resp := StatusChangeResponse{Leave: mapToResponse(*l)}
	if empl != nil {
		resp.Employee = &EmployeeBalanceSummary{
			FullName: empl.FullName,
			LeaveBalance: employee.LeaveBalanceView{
				Casual: empl.CasualBalance,
				Sick:   empl.SickBalance,
				Earned: empl.EarnedBalance,
			},
		}
	}

	s.logger.Info("set leave status success",
		zap.String("leave_id", id),
		zap.String("status", status),
	)
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(qtx Repository) error {
		if _, err := qtx.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		return qtx.Delete(ctx, id)
	})
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		FromDate:   l.FromDate.Format(leaveDateLayout),
		ToDate:     l.ToDate.Format(leaveDateLayout),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
