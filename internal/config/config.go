package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Leave consumption filters. The balance aggregation either counts only
// approved paid leave or every approved request; the choice is an
// operator decision, not a code default buried in a call site.
const (
	ConsumptionPaidOnly = "paid"
	ConsumptionAll      = "all"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	RedisAddr string

	SMTP       SMTPConfig
	AdminEmail string // fixed recipient for operational batch alerts

	// Business constants, deliberately explicit (these drifted across
	// call sites historically and must be chosen per deployment).
	AccrualRatePerMonth        decimal.Decimal
	ConsumptionLeaveTypeFilter string
	AlertThresholdDays         int
	ScanWindowDays             int

	// Cron specs for the three daily scans. Kept separate so the jobs
	// don't pile onto one trigger time.
	VehicleScanSpec string
	LicenseScanSpec string
	TodoScanSpec    string

	DispatcherWorkers   int
	DispatcherQueueSize int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Load reads configuration from the environment. Call godotenv.Load
// before this in main; Load itself only sees the process environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DBNAME", "erp"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		SMTP: SMTPConfig{
			Host:     getEnv("MAIL_SERVER", "smtp.gmail.com"),
			Port:     getEnvInt("MAIL_PORT", 587),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			Sender:   os.Getenv("MAIL_DEFAULT_SENDER"),
		},
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@example.com"),

		ConsumptionLeaveTypeFilter: getEnv("CONSUMPTION_LEAVE_TYPE_FILTER", ConsumptionPaidOnly),
		AlertThresholdDays:         getEnvInt("ALERT_THRESHOLD_DAYS", 7),
		ScanWindowDays:             getEnvInt("SCAN_WINDOW_DAYS", 10),

		VehicleScanSpec: getEnv("VEHICLE_SCAN_CRON", "0 8 * * *"),
		LicenseScanSpec: getEnv("LICENSE_SCAN_CRON", "15 8 * * *"),
		TodoScanSpec:    getEnv("TODO_SCAN_CRON", "30 8 * * *"),

		DispatcherWorkers:   getEnvInt("MAIL_DISPATCH_WORKERS", 4),
		DispatcherQueueSize: getEnvInt("MAIL_DISPATCH_QUEUE", 64),

		HTTPReadTimeout:  5 * time.Second,
		HTTPWriteTimeout: 10 * time.Second,
		HTTPIdleTimeout:  60 * time.Second,
	}

	rate, err := decimal.NewFromString(getEnv("ACCRUAL_RATE_PER_MONTH", "1.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_RATE_PER_MONTH: %w", err)
	}
	cfg.AccrualRatePerMonth = rate

	if f := cfg.ConsumptionLeaveTypeFilter; f != ConsumptionPaidOnly && f != ConsumptionAll {
		return nil, fmt.Errorf("invalid CONSUMPTION_LEAVE_TYPE_FILTER %q (want %q or %q)",
			f, ConsumptionPaidOnly, ConsumptionAll)
	}
	if cfg.AlertThresholdDays < 0 || cfg.ScanWindowDays < 0 {
		return nil, fmt.Errorf("day thresholds must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
