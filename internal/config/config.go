package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LeavePolicy holds the per-category opening balances granted to a new
// employee. Balances are day counts.
type LeavePolicy struct {
	CasualDays int
	SickDays   int
	EarnedDays int
}

// PayrollPolicy holds the salary-breakup percentages and proration inputs.
// These are business policy, not law; every figure can be overridden via
// VTHR_PAYROLL_* environment variables.
type PayrollPolicy struct {
	BasicPct            float64
	HRAPct              float64
	DAPct               float64
	EmployerPFPct       float64
	TDSPct              float64
	WorkingDaysPerMonth int
	// CountPaidLeaveInDeductions preserves the legacy behavior of deducting
	// approved leave days regardless of a paid/unpaid split. Turning it off
	// removes approved-leave days from the absence deduction.
	CountPaidLeaveInDeductions bool
}

type EmployeePolicy struct {
	CTCMin int64
	CTCMax int64
	// IDStart is the first numeric suffix issued for auto-generated
	// VT-prefixed employee ids.
	IDStart int64
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
	DocumentDir string

	Leave    LeavePolicy
	Payroll  PayrollPolicy
	Employee EmployeePolicy
}

// Load reads configuration from the environment with sane defaults for every
// policy knob. Env keys use the VTHR_ prefix with underscores, e.g.
// VTHR_PAYROLL_BASIC_PCT.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VTHR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "vthr")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.broker", "localhost:9092")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("document.dir", "storage/documents")

	v.SetDefault("leave.casual_days", 10)
	v.SetDefault("leave.sick_days", 5)
	v.SetDefault("leave.earned_days", 7)

	v.SetDefault("payroll.basic_pct", 0.40)
	v.SetDefault("payroll.hra_pct", 0.50)
	v.SetDefault("payroll.da_pct", 0.035)
	v.SetDefault("payroll.employer_pf_pct", 0.12)
	v.SetDefault("payroll.tds_pct", 0.04)
	v.SetDefault("payroll.working_days", 22)
	v.SetDefault("payroll.count_paid_leave_in_deductions", true)

	v.SetDefault("employee.ctc_min", 10_000)
	v.SetDefault("employee.ctc_max", 10_000_000)
	v.SetDefault("employee.id_start", 101)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			Port:     v.GetString("db.port"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		RedisAddr:   v.GetString("redis.addr"),
		KafkaBroker: v.GetString("kafka.broker"),
		JWTSecret:   v.GetString("jwt.secret"),
		DocumentDir: v.GetString("document.dir"),
		Leave: LeavePolicy{
			CasualDays: v.GetInt("leave.casual_days"),
			SickDays:   v.GetInt("leave.sick_days"),
			EarnedDays: v.GetInt("leave.earned_days"),
		},
		Payroll: PayrollPolicy{
			BasicPct:                   v.GetFloat64("payroll.basic_pct"),
			HRAPct:                     v.GetFloat64("payroll.hra_pct"),
			DAPct:                      v.GetFloat64("payroll.da_pct"),
			EmployerPFPct:              v.GetFloat64("payroll.employer_pf_pct"),
			TDSPct:                     v.GetFloat64("payroll.tds_pct"),
			WorkingDaysPerMonth:        v.GetInt("payroll.working_days"),
			CountPaidLeaveInDeductions: v.GetBool("payroll.count_paid_leave_in_deductions"),
		},
		Employee: EmployeePolicy{
			CTCMin:  v.GetInt64("employee.ctc_min"),
			CTCMax:  v.GetInt64("employee.ctc_max"),
			IDStart: v.GetInt64("employee.id_start"),
		},
	}

	return cfg, nil
}

// DefaultPayrollPolicy mirrors the Load defaults for callers that need the
// policy without a full environment read, primarily tests.
func DefaultPayrollPolicy() PayrollPolicy {
	return PayrollPolicy{
		BasicPct:                   0.40,
		HRAPct:                     0.50,
		DAPct:                      0.035,
		EmployerPFPct:              0.12,
		TDSPct:                     0.04,
		WorkingDaysPerMonth:        22,
		CountPaidLeaveInDeductions: true,
	}
}

// DefaultLeavePolicy mirrors the Load defaults.
func DefaultLeavePolicy() LeavePolicy {
	return LeavePolicy{CasualDays: 10, SickDays: 5, EarnedDays: 7}
}
