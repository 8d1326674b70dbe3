package app

import (
	"database/sql"

	"vthr/internal/attendance"
	"vthr/internal/auth"
	"vthr/internal/config"
	"vthr/internal/employee"
	"vthr/internal/leave"
	"vthr/internal/messaging/kafka"
	"vthr/internal/offerletter"
	"vthr/internal/payroll"
	"vthr/internal/rbac"
	"vthr/internal/shared/counter"
	"vthr/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	sqlDB *sql.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	validator := validation.New(cfg.Employee.CTCMin, cfg.Employee.CTCMax)

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	offerLetterRepo := offerletter.NewRepository(gormDB)
	userRepo := auth.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(
		sqlDB, employeeRepo, counterRepo, outboxRepo, rdb,
		validator, cfg.Leave, cfg.Employee.IDStart, logger,
	)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo, validator, logger)
	leaveService := leave.NewService(leaveRepo, leave.NewLedger(logger), validator, logger)
	payrollService := payroll.NewService(
		sqlDB, payrollRepo, employeeRepo, attendanceRepo, leaveRepo,
		outboxRepo, validator, cfg.Payroll, cfg.DocumentDir, logger,
	)
	offerLetterService := offerletter.NewService(offerLetterRepo, validator, cfg.DocumentDir, logger)
	authService := auth.NewService(userRepo, employeeRepo, cfg.JWTSecret, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb, logger)
	offerLetterHandler := offerletter.NewHandler(offerLetterService, logger)
	authHandler := auth.NewHandler(authService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb, logger)
		offerletter.RegisterRoutes(api, offerLetterHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, logger)
	}

	return nil
}
