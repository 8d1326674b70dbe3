package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vthr/internal/config"
	"vthr/internal/employee"
	employeeerrors "vthr/internal/employee/errors"
	"vthr/internal/events"
	"vthr/internal/messaging/kafka"
	"vthr/internal/shared/apperror"
	"vthr/internal/shared/contextutil"
	"vthr/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, e *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findByBusinessIDFn func(ctx context.Context, employeeID string) (*employee.Employee, error)
	findByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
	findOptionsFn      func(ctx context.Context) ([]employee.Employee, error)
	findActiveFn       func(ctx context.Context) ([]employee.Employee, error)
	updateFn           func(ctx context.Context, e *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByBusinessID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findByBusinessIDFn != nil {
		return f.findByBusinessIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	if f.findOptionsFn != nil {
		return f.findOptionsFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindActive(ctx context.Context) ([]employee.Employee, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type employeeServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *fakeEmployeeRepository
	counter   *fakeCounterRepository
	outbox    *fakeOutboxRepository
	redisMock redismock.ClientMock
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}

	svc := employee.NewService(
		db, repo, counterRepo, outboxRepo, rdb,
		validation.New(10000, 10000000),
		config.LeavePolicy{CasualDays: 10, SickDays: 5, EarnedDays: 7},
		101,
	)

	return &employeeServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:    "Asha Verma",
		Email:       "asha@valourtech.com",
		Phone:       "08123456789",
		Designation: "Engineer",
		Department:  "Platform",
		JoiningDate: "2026-01-05",
		CurrentCTC:  1200000,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - auto issued employee id starts at VT000101", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, "employee_id", counterType)
			return 1, nil
		}
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "VT000101", e.EmployeeID)
			assert.Equal(t, int64(101), e.EmployeeNumber)
			assert.Equal(t, "Asha Verma", e.FullName)
			assert.Equal(t, employee.StatusActive, e.Status)
			assert.Equal(t, "DEV", e.Role)
			assert.Equal(t, 10, e.CasualBalance)
			assert.Equal(t, 5, e.SickBalance)
			assert.Equal(t, 7, e.EarnedBalance)
			return nil
		}
		deps.redisMock.ExpectDel("employees:options").SetVal(1)

		resp, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "VT000101", resp.EmployeeID)
		assert.Equal(t, 10, resp.LeaveBalance.Casual)
		assert.Equal(t, 5, resp.LeaveBalance.Sick)
		assert.Equal(t, 7, resp.LeaveBalance.Earned)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success - outbox row carries request id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)

		expectTx(t, deps.sqlMock, true)

		var captured kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			captured = event
			return nil
		}
		deps.redisMock.ExpectDel("employees:options").SetVal(1)

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, rid, captured.RequestID)
		assert.Equal(t, "employee", captured.AggregateType)
		assert.Equal(t, events.EmployeeCreatedTopic, captured.Topic)

		var payload events.EmployeeCreatedEvent
		assert.NoError(t, json.Unmarshal(captured.Payload, &payload))
		assert.Equal(t, rid, payload.RequestID)
		assert.Equal(t, "asha@valourtech.com", payload.Email)
	})

	t.Run("success - manual employee id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := validCreateRequest()
		req.EmployeeID = "VT000202"

		counterCalled := false
		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			counterCalled = true
			return 0, nil
		}
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "VT000202", e.EmployeeID)
			assert.Equal(t, int64(202), e.EmployeeNumber)
			return nil
		}
		deps.redisMock.ExpectDel("employees:options").SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.False(t, counterCalled)
		assert.Equal(t, "VT000202", resp.EmployeeID)
	})

	t.Run("negative - malformed manual employee id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		req := validCreateRequest()
		req.EmployeeID = "EMP-101"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative - manual employee id already taken", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		req := validCreateRequest()
		req.EmployeeID = "VT000101"

		deps.repo.findByBusinessIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), EmployeeID: employeeID}, nil
		}

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("negative - validation violations reported together", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.Email = "not-an-email"
		req.CurrentCTC = 5000

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)

		rules, ok := appErr.Details.([]string)
		assert.True(t, ok)
		assert.Equal(t, []string{
			"Invalid email format",
			"CTC must be between 10000 and 10000000",
		}, rules)
	})

	t.Run("negative - duplicate email constraint maps to conflict", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	})

	t.Run("negative - counter failure rolls back", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			return 0, errors.New("counter unavailable")
		}

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), EmployeeID: "VT000101", FullName: "Asha Verma", CasualBalance: 10, SickBalance: 5, EarnedBalance: 7},
				{ID: uuid.New(), EmployeeID: "VT000102", FullName: "Rohan Iyer"},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Asha Verma", resp[0].FullName)
		assert.Equal(t, 10, resp[0].LeaveBalance.Casual)
	})

	t.Run("negative - repo error", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("by email", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, "asha@valourtech.com", email)
			return &employee.Employee{ID: uuid.New(), EmployeeID: "VT000101", Email: email}, nil
		}

		resp, err := deps.service.Lookup(ctx, "asha@valourtech.com", "")

		assert.NoError(t, err)
		assert.Equal(t, "VT000101", resp.EmployeeID)
	})

	t.Run("by business id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByBusinessIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), EmployeeID: employeeID}, nil
		}

		resp, err := deps.service.Lookup(ctx, "", "VT000101")

		assert.NoError(t, err)
		assert.Equal(t, "VT000101", resp.EmployeeID)
	})

	t.Run("negative - no identifier", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Lookup(ctx, "", "")

		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("negative - not found maps to employee error", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Lookup(ctx, "ghost@valourtech.com", "")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expected := []employee.EmployeeResponse{
			{ID: uuid.New().String(), EmployeeID: "VT000101", FullName: "Asha Verma"},
		}
		jsonResp, _ := json.Marshal(expected)
		deps.redisMock.ExpectGet("employees:options").SetVal(string(jsonResp))

		repoCalled := false
		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			repoCalled = true
			return nil, nil
		}

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Asha Verma", resp[0].FullName)
		assert.False(t, repoCalled)
	})

	t.Run("cache miss reads db and refills cache", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet("employees:options").RedisNil()

		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), EmployeeID: "VT000102", FullName: "Rohan Iyer"},
			}, nil
		}

		deps.redisMock.Regexp().ExpectSet("employees:options", `.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Rohan Iyer", resp[0].FullName)
	})

	t.Run("negative - db error surfaces", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet("employees:options").RedisNil()

		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("database connection lost")
		}

		resp, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success - leave balances untouched", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:            targetID,
				EmployeeID:    "VT000101",
				FullName:      "Asha Verma",
				Email:         "asha@valourtech.com",
				JoiningDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
				CurrentCTC:    1200000,
				Status:        employee.StatusActive,
				CasualBalance: 4,
				SickBalance:   2,
				EarnedBalance: 1,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Asha V Verma", e.FullName)
			assert.Equal(t, int64(1500000), e.CurrentCTC)
			assert.Equal(t, 4, e.CasualBalance)
			assert.Equal(t, 2, e.SickBalance)
			assert.Equal(t, 1, e.EarnedBalance)
			return nil
		}
		deps.redisMock.ExpectDel("employees:options").SetVal(1)

		resp, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{
			FullName:    "Asha V Verma",
			Email:       "asha@valourtech.com",
			JoiningDate: "2026-01-05",
			CurrentCTC:  1500000,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Asha V Verma", resp.FullName)
		assert.Equal(t, 4, resp.LeaveBalance.Casual)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - employee not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{
			FullName:    "Asha Verma",
			Email:       "asha@valourtech.com",
			JoiningDate: "2026-01-05",
			CurrentCTC:  1200000,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(targetID)}, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			assert.Equal(t, targetID, id)
			return nil
		}
		deps.redisMock.ExpectDel("employees:options").SetVal(1)

		err := deps.service.Delete(ctx, targetID)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - delete failure rolls back", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(targetID)}, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			return errors.New("db error")
		}

		err := deps.service.Delete(ctx, targetID)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
