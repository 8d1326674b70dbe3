package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vthr/internal/attendance"
	"vthr/internal/config"
	"vthr/internal/employee"
	"vthr/internal/leave"
	"vthr/internal/messaging/kafka"
	"vthr/internal/payroll"
	"vthr/internal/shared/connection"
	"vthr/internal/validation"

	"go.uber.org/zap"
)

// RunConsumer renders payslips for payroll events until interrupted.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	l := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	validator := validation.New(cfg.Employee.CTCMin, cfg.Employee.CTCMax)
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		attendance.NewRepository(gormDB),
		leave.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		validator,
		cfg.Payroll,
		cfg.DocumentDir,
		logger,
	)

	consumer := payroll.NewPayslipRequestedConsumer(
		cfg.KafkaBroker,
		"vthr-payslip-renderer",
		payrollService,
		logger,
	)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("consumer shutting down")
	cancel()

	return nil
}
