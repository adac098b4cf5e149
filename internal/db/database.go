package db

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dialdesk/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is the schema this binary was built against. Bumped on
// every migration that older binaries cannot run on.
const SchemaVersion = 3

// SchemaMismatchError reports a schema version the binary does not know
// how to talk to. Raised once at startup; request handlers never see it.
type SchemaMismatchError struct {
	Expected int
	Found    int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("database schema version %d does not match expected %d", e.Found, e.Expected)
}

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// Map driver unique/foreign-key violations to gorm.ErrDuplicatedKey
		// and friends so repositories never match on error strings.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Warn().Err(err).Msg("Could not create uuid-ossp extension")
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Warn().Err(err).Msg("Failed to create some custom indexes")
	}

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// An agent may hold at most one active number. This backs the
		// registry's exclusivity invariant at the storage level.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_phone_numbers_assigned_user ON phone_numbers(assigned_user_id) WHERE status = 'assigned' AND deleted_at IS NULL`,

		// Registry lookups by dialable number during webhook ingestion
		`CREATE INDEX IF NOT EXISTS idx_phone_numbers_company_status ON phone_numbers(company_id, status)`,

		// Conversation views read a contact's interactions newest-first
		`CREATE INDEX IF NOT EXISTS idx_interactions_contact_created ON interactions(contact_id, created_at DESC)`,

		// Webhook inbox lookups prune by age
		`CREATE INDEX IF NOT EXISTS idx_webhook_events_received_at ON webhook_events(received_at)`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Warn().Err(err).Str("index", idx).Msg("Failed to create index")
		}
	}

	return nil
}

// CheckSchemaVersion verifies the stored schema version matches what the
// binary expects. A missing row is written on first boot; any other
// version fails startup with SchemaMismatchError.
func CheckSchemaVersion(db *gorm.DB) error {
	var info models.SchemaInfo
	err := db.First(&info, "id = 1").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		info = models.SchemaInfo{ID: 1, Version: SchemaVersion, UpdatedAt: time.Now()}
		return db.Create(&info).Error
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if info.Version != SchemaVersion {
		return &SchemaMismatchError{Expected: SchemaVersion, Found: info.Version}
	}
	return nil
}

// SeedInitialData creates initial system data
func SeedInitialData(db *gorm.DB) error {
	log.Info().Msg("Seeding initial data...")

	var userCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}

	if userCount == 0 {
		adminUser := models.User{
			Email:    "admin@dialdesk.local",
			Password: "$2a$10$ihq36CvkxLkl2FlsN1xI7.iRADfxaBLWHbNzdOCGzJYY/sqsCP1I2", // admin123
			Name:     "System Administrator",
			Role:     models.RoleSuperAdmin,
			IsActive: true,
		}

		if err := db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Info().Msg("Admin user created successfully")
	}

	roles := []models.Role{
		{Name: models.RoleSuperAdmin, Description: "Cross-company operator", Scope: "system"},
		{Name: models.RoleCompanyAdmin, Description: "Company administrator", Scope: "company"},
		{Name: models.RoleAgent, Description: "Call-center agent", Scope: "company"},
	}
	for _, role := range roles {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", role.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
			}
		}
	}

	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := CheckSchemaVersion(db); err != nil {
		return err
	}

	if err := SeedInitialData(db); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
