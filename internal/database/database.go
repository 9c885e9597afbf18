package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/domain"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs automatic migrations (for development only)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.BillingTerm{},
		&domain.Account{},
		&domain.Contact{},
		&domain.Role{},
		&domain.DeliveryCenter{},
		&domain.RoleRate{},
		&domain.DeliveryCenterApprover{},
		&domain.Employee{},
		&domain.CalendarDay{},
		&domain.CurrencyRate{},
		&domain.Opportunity{},
		&domain.Release{},
		&domain.EmployeeEngagement{},
		&domain.EngagementTimesheetApprover{},
		&domain.OpportunityPermanentLock{},
		&domain.Estimate{},
		&domain.EstimatePhase{},
		&domain.EstimateLineItem{},
		&domain.EstimateWeeklyHours{},
		&domain.Quote{},
		&domain.QuotePhase{},
		&domain.QuoteLineItem{},
		&domain.QuoteWeeklyHours{},
		&domain.QuotePaymentTrigger{},
		&domain.QuoteVariableCompensation{},
		&domain.Document{},
		&domain.Timesheet{},
		&domain.TimesheetEntry{},
		&domain.TimesheetStatusHistory{},
		&domain.TimesheetApprovedSnapshot{},
	)
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Ping()
}

// PoolStats holds connection pool statistics for the readiness probe
type PoolStats struct {
	OpenConnections int `json:"openConnections"`
	InUse           int `json:"inUse"`
	Idle            int `json:"idle"`
}

// HealthCheckWithStats pings the database and returns pool statistics
func HealthCheckWithStats(db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &PoolStats{
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
	}, nil
}
