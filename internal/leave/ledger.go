package leave

import (
	"context"

	"go.uber.org/zap"
)

// Ledger is the single writer for employee leave balances. Every mutation
// goes through Debit or Credit against a locked employee row; nothing else in
// the codebase touches the balance columns after onboarding.
type Ledger struct {
	logger *zap.Logger
}

func NewLedger(logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("leave.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.ledger")
	}
	return &Ledger{logger: l}
}

// Debit subtracts days from the employee's bucket, flooring at zero. A clamp
// means the apply-time check was bypassed by a race or a day-count mismatch,
// so it is logged loudly rather than hidden. The repo must be bound to the
// enclosing transaction.
func (lg *Ledger) Debit(ctx context.Context, repo Repository, employeeID string, cat Category, days int) (int, error) {
	current, err := repo.BalanceForUpdate(ctx, employeeID, cat)
	if err != nil {
		return 0, err
	}

	next := current - days
	if next < 0 {
		lg.logger.Warn("leave balance debit clamped to zero",
			zap.String("employee_id", employeeID),
			zap.String("category", cat.BalanceKey()),
			zap.Int("available", current),
			zap.Int("requested", days),
		)
		next = 0
	}

	if err := repo.SetBalance(ctx, employeeID, cat, next); err != nil {
		return 0, err
	}

	lg.logger.Info("leave balance debited",
		zap.String("employee_id", employeeID),
		zap.String("category", cat.BalanceKey()),
		zap.Int("days", days),
		zap.Int("balance", next),
	)
	return next, nil
}

// Credit restores days to the employee's bucket, exactly cancelling a prior
// debit of the same size.
func (lg *Ledger) Credit(ctx context.Context, repo Repository, employeeID string, cat Category, days int) (int, error) {
	current, err := repo.BalanceForUpdate(ctx, employeeID, cat)
	if err != nil {
		return 0, err
	}

	next := current + days
	if err := repo.SetBalance(ctx, employeeID, cat, next); err != nil {
		return 0, err
	}

	lg.logger.Info("leave balance credited",
		zap.String("employee_id", employeeID),
		zap.String("category", cat.BalanceKey()),
		zap.Int("days", days),
		zap.Int("balance", next),
	)
	return next, nil
}
