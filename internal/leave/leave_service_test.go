package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vthr/internal/employee"
	"vthr/internal/leave"
	"vthr/internal/shared/apperror"
	"vthr/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeLeaveRepository keeps balances in memory so ledger effects can be
// asserted end to end, while the find/update hooks stay injectable.
type fakeLeaveRepository struct {
	balances map[string]map[leave.Category]int

	createFn                  func(ctx context.Context, l *leave.Leave) error
	findAllFn                 func(ctx context.Context) ([]leave.Leave, error)
	findByIDFn                func(ctx context.Context, id string) (*leave.Leave, error)
	findByIDForUpdateFn       func(ctx context.Context, id string) (*leave.Leave, error)
	findByEmployeeFn          func(ctx context.Context, employeeID string) ([]leave.Leave, error)
	findApprovedOverlappingFn func(ctx context.Context, from, to time.Time) ([]leave.Leave, error)
	findApprovedForEmployeeFn func(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error)
	employeeSummaryFn         func(ctx context.Context, employeeID string) (*employee.Employee, error)
	updateFn                  func(ctx context.Context, l *leave.Leave) error
	deleteFn                  func(ctx context.Context, id string) error
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{balances: map[string]map[leave.Category]int{}}
}

func (f *fakeLeaveRepository) seedBalances(employeeID string, casual, sick, earned int) {
	f.balances[employeeID] = map[leave.Category]int{
		leave.CategoryCasual: casual,
		leave.CategorySick:   sick,
		leave.CategoryEarned: earned,
	}
}

func (f *fakeLeaveRepository) Transaction(ctx context.Context, fn func(leave.Repository) error) error {
	return fn(f)
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindApprovedOverlapping(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	if f.findApprovedOverlappingFn != nil {
		return f.findApprovedOverlappingFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindApprovedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	if f.findApprovedForEmployeeFn != nil {
		return f.findApprovedForEmployeeFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) EmployeeSummary(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.employeeSummaryFn != nil {
		return f.employeeSummaryFn(ctx, employeeID)
	}
	b, ok := f.balances[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &employee.Employee{
		FullName:      "Asha Verma",
		CasualBalance: b[leave.CategoryCasual],
		SickBalance:   b[leave.CategorySick],
		EarnedBalance: b[leave.CategoryEarned],
	}, nil
}

func (f *fakeLeaveRepository) BalanceForUpdate(ctx context.Context, employeeID string, cat leave.Category) (int, error) {
	b, ok := f.balances[employeeID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return b[cat], nil
}

func (f *fakeLeaveRepository) SetBalance(ctx context.Context, employeeID string, cat leave.Category, value int) error {
	b, ok := f.balances[employeeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b[cat] = value
	return nil
}

func (f *fakeLeaveRepository) Balances(ctx context.Context, employeeID string) (leave.Balances, error) {
	b, ok := f.balances[employeeID]
	if !ok {
		return leave.Balances{}, gorm.ErrRecordNotFound
	}
	return leave.Balances{
		Casual: b[leave.CategoryCasual],
		Sick:   b[leave.CategorySick],
		Earned: b[leave.CategoryEarned],
	}, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func newLeaveService(repo *fakeLeaveRepository) leave.Service {
	return leave.NewService(repo, leave.NewLedger(), validation.New(10000, 10000000))
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success - pending record, balance untouched", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		var created *leave.Leave
		repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		svc := newLeaveService(repo)
		resp, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Casual",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-04",
			Reason:     "Family event",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, "Casual", created.LeaveType)

		balances, _ := repo.Balances(ctx, employeeID)
		assert.Equal(t, 10, balances.Casual)
	})

	t.Run("single day leave counts as one", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		svc := newLeaveService(repo)
		resp, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Earned",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-02",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.TotalDays)
	})

	t.Run("case-folded leave type is normalized on the record", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		var created *leave.Leave
		repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		svc := newLeaveService(repo)
		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Sick",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-03",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Sick", created.LeaveType)
	})

	t.Run("negative - insufficient balance reports both numbers", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		svc := newLeaveService(repo)
		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Sick",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-07", // 6 days against a balance of 5
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInsufficientBalance, appErr.Code)
		assert.Contains(t, appErr.Message, "available 5")
		assert.Contains(t, appErr.Message, "requested 6")
		assert.Equal(t, map[string]int{"available": 5, "requested": 6}, appErr.Details)
	})

	t.Run("negative - unknown leave type rejected before the ledger", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		svc := newLeaveService(repo)
		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Sabbatical",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-03",
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)
	})

	t.Run("negative - from after to collected by validation", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		svc := newLeaveService(repo)

		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "Casual",
			FromDate:   "2026-03-05",
			ToDate:     "2026-03-02",
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		rules, _ := appErr.Details.([]string)
		assert.Contains(t, rules, "From date cannot be after to date")
	})

	t.Run("negative - employee missing", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		svc := newLeaveService(repo)

		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: uuid.New().String(),
			LeaveType:  "Casual",
			FromDate:   "2026-03-02",
			ToDate:     "2026-03-03",
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func pendingLeave(employeeID string, leaveType string, days int) *leave.Leave {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &leave.Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		LeaveType:  leaveType,
		FromDate:   from,
		ToDate:     from.AddDate(0, 0, days-1),
		TotalDays:  days,
		Status:     leave.StatusPending,
	}
}

func TestLeaveService_SetStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("pending to approved debits the bucket", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		l := pendingLeave(employeeID, "Casual", 3)
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		svc := newLeaveService(repo)
		resp, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Leave.Status)
		assert.NotNil(t, resp.Employee)
		assert.Equal(t, 7, resp.Employee.LeaveBalance.Casual)
		assert.Equal(t, 5, resp.Employee.LeaveBalance.Sick)
	})

	t.Run("approve then reject restores the exact balance", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		l := pendingLeave(employeeID, "Earned", 4)
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		svc := newLeaveService(repo)

		_, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusApproved)
		assert.NoError(t, err)
		balances, _ := repo.Balances(ctx, employeeID)
		assert.Equal(t, 3, balances.Earned)

		_, err = svc.SetStatus(ctx, l.ID.String(), leave.StatusRejected)
		assert.NoError(t, err)
		balances, _ = repo.Balances(ctx, employeeID)
		assert.Equal(t, 7, balances.Earned)
	})

	t.Run("debit floors at zero instead of going negative", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 2, 5, 7)

		l := pendingLeave(employeeID, "Casual", 5)
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		svc := newLeaveService(repo)
		resp, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Employee.LeaveBalance.Casual)
	})

	t.Run("pending to rejected leaves the balance alone", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		l := pendingLeave(employeeID, "Casual", 3)
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		svc := newLeaveService(repo)
		resp, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Leave.Status)
		assert.Equal(t, 10, resp.Employee.LeaveBalance.Casual)
	})

	t.Run("re-approving an approved leave is a ledger no-op", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		l := pendingLeave(employeeID, "Casual", 3)
		l.Status = leave.StatusApproved
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		svc := newLeaveService(repo)
		resp, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, 10, resp.Employee.LeaveBalance.Casual)
	})

	t.Run("negative - unknown status", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		svc := newLeaveService(repo)

		_, err := svc.SetStatus(ctx, uuid.New().String(), "Cancelled")

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	})

	t.Run("negative - leave not found", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		svc := newLeaveService(repo)

		_, err := svc.SetStatus(ctx, uuid.New().String(), leave.StatusApproved)

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})

	t.Run("negative - ledger failure aborts the status change", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.seedBalances(employeeID, 10, 5, 7)

		l := pendingLeave(employeeID, "Casual", 3)
		repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			return errors.New("db error")
		}

		svc := newLeaveService(repo)
		_, err := svc.SetStatus(ctx, l.ID.String(), leave.StatusApproved)

		assert.Error(t, err)
	})
}

func TestLeaveService_MonthCalendar(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("spanning leave is clipped to the month", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.findApprovedOverlappingFn = func(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
			assert.Equal(t, "2026-03-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-03-31", to.Format("2006-01-02"))
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: employeeID,
					Employee:   &employee.Employee{FullName: "Asha Verma"},
					LeaveType:  "Earned",
					FromDate:   time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
					ToDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
					TotalDays:  4,
					Status:     leave.StatusApproved,
				},
			}, nil
		}

		svc := newLeaveService(repo)
		cal, err := svc.MonthCalendar(ctx, 2026, time.March)

		assert.NoError(t, err)
		assert.Len(t, cal, 2)
		assert.Len(t, cal["2026-03-01"], 1)
		assert.Len(t, cal["2026-03-02"], 1)
		assert.Equal(t, "Asha Verma", cal["2026-03-01"][0].EmployeeName)
		assert.NotContains(t, cal, "2026-02-27")
	})

	t.Run("ics feed carries one event per leave", func(t *testing.T) {
		repo := newFakeLeaveRepository()
		repo.findApprovedOverlappingFn = func(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: employeeID,
					Employee:   &employee.Employee{FullName: "Rohan Iyer"},
					LeaveType:  "Sick",
					FromDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					ToDate:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
					TotalDays:  2,
					Status:     leave.StatusApproved,
				},
			}, nil
		}

		svc := newLeaveService(repo)
		feed, err := svc.MonthCalendarICS(ctx, 2026, time.March)

		assert.NoError(t, err)
		assert.Contains(t, feed, "BEGIN:VCALENDAR")
		assert.Contains(t, feed, "BEGIN:VEVENT")
		assert.Contains(t, feed, "Rohan Iyer - Sick leave")
	})
}
