package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	employeeerrors "vthr/internal/employee/errors"
	"vthr/internal/config"
	"vthr/internal/events"
	"vthr/internal/messaging/kafka"
	"vthr/internal/shared/apperror"
	"vthr/internal/shared/contextutil"
	"vthr/internal/shared/counter"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	employeeIDCounter  = "employee_id"
	optionsCacheKey    = "employees:options"
	optionsCacheTTL    = time.Hour
	employeeDateLayout = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Lookup(ctx context.Context, email, employeeID string) (EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	ExportExcel(ctx context.Context) ([]byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	validator *validation.Validator
	leave     config.LeavePolicy
	idStart   int64
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	validator *validation.Validator,
	leavePolicy config.LeavePolicy,
	idStart int64,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		validator: validator,
		leave:     leavePolicy,
		idStart:   idStart,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("employee_id", req.EmployeeID),
	)

	if violations := s.validator.ValidateEmployeeData(validation.EmployeeData{
		Name:        req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		CurrentCTC:  req.CurrentCTC,
		JoiningDate: req.JoiningDate,
		LeavingDate: req.LeavingDate,
		Status:      req.Status,
	}); len(violations) > 0 {
		s.logger.Warn("create employee validation failed", zap.Strings("violations", violations))
		return EmployeeResponse{}, apperror.NewValidationFailed(violations)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	joiningDate, _ := time.Parse(employeeDateLayout, req.JoiningDate)
	var leavingDate *time.Time
	if req.LeavingDate != "" {
		d, _ := time.Parse(employeeDateLayout, req.LeavingDate)
		leavingDate = &d
	}

	businessID := req.EmployeeID
	var employeeNumber int64
	if businessID == "" {
		nextVal, err := s.counter.GetNextValue(ctx, employeeIDCounter)
		if err != nil {
			s.logger.Error("create employee issue id failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		employeeNumber = s.idStart + nextVal - 1
		businessID = fmt.Sprintf("VT%06d", employeeNumber)
	} else {
		if !validation.IsValidEmployeeID(businessID) {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		employeeNumber, _ = strconv.ParseInt(businessID[2:], 10, 64)
		if existing, err := qtx.FindByBusinessID(ctx, businessID); err == nil && existing != nil {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, err
		}
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	role := req.Role
	if role == "" {
		role = "DEV"
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeID:     businessID,
		EmployeeNumber: employeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Designation:    req.Designation,
		Department:     req.Department,
		Role:           role,
		JoiningDate:    joiningDate,
		LeavingDate:    leavingDate,
		CurrentCTC:     req.CurrentCTC,
		Status:         status,
		CasualBalance:  s.leave.CasualDays,
		SickBalance:    s.leave.SickDays,
		EarnedBalance:  s.leave.EarnedDays,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			BusinessID: empl.EmployeeID,
			Email:      empl.Email,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Lookup(ctx context.Context, email, employeeID string) (EmployeeResponse, error) {
	if email == "" && employeeID == "" {
		return EmployeeResponse{}, apperror.ErrInvalidInput
	}

	var (
		empl *Employee
		err  error
	)
	if email != "" {
		empl, err = s.repo.FindByEmail(ctx, email)
	} else {
		empl, err = s.repo.FindByBusinessID(ctx, employeeID)
	}
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps a cold cache from stampeding the database when the
	// admin UI loads several dropdowns at once.
	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, optionsCacheKey, jsonData, optionsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("id", id))

	if violations := s.validator.ValidateEmployeeData(validation.EmployeeData{
		Name:        req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		CurrentCTC:  req.CurrentCTC,
		JoiningDate: req.JoiningDate,
		LeavingDate: req.LeavingDate,
		Status:      req.Status,
	}); len(violations) > 0 {
		return EmployeeResponse{}, apperror.NewValidationFailed(violations)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	joiningDate, _ := time.Parse(employeeDateLayout, req.JoiningDate)
	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.Designation = req.Designation
	empl.Department = req.Department
	if req.Role != "" {
		empl.Role = req.Role
	}
	empl.JoiningDate = joiningDate
	if req.LeavingDate != "" {
		d, _ := time.Parse(employeeDateLayout, req.LeavingDate)
		empl.LeavingDate = &d
	}
	empl.CurrentCTC = req.CurrentCTC
	if req.Status != "" {
		empl.Status = req.Status
	}
	// Leave balances are deliberately untouched here; only the leave ledger
	// may move them after onboarding.

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", empl.EmployeeID))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Error("invalidate employee options cache failed",
			zap.String("key", optionsCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		EmployeeID:     e.EmployeeID,
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		Designation:    e.Designation,
		Department:     e.Department,
		Role:           e.Role,
		JoiningDate:    e.JoiningDate.Format(employeeDateLayout),
		CurrentCTC:     e.CurrentCTC,
		Status:         e.Status,
		LeaveBalance: LeaveBalanceView{
			Casual: e.CasualBalance,
			Sick:   e.SickBalance,
			Earned: e.EarnedBalance,
		},
	}
	if e.LeavingDate != nil {
		v := e.LeavingDate.Format(employeeDateLayout)
		resp.LeavingDate = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
