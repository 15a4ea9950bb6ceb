package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/models"
)

// SchemaMigration records an applied migration in the schema_migrations table.
type SchemaMigration struct {
	Name      string    `gorm:"primaryKey;size:128"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName overrides the default pluralization.
func (SchemaMigration) TableName() string { return "schema_migrations" }

// Migration is a named, idempotent schema change. Optional migrations may
// fail without aborting startup; the failure is logged and the migration is
// retried on the next start.
type Migration struct {
	Name     string
	Optional bool
	Run      func(db *gorm.DB) error
}

// Migrations returns the ordered migration log. Schema changes happen here,
// once, at startup; request handlers never mutate the schema.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "0001_core_tables",
			Run: func(db *gorm.DB) error {
				return db.AutoMigrate(
					&models.User{},
					&models.Activity{},
					&models.Registration{},
					&models.News{},
					&models.AuditLog{},
				)
			},
		},
		{
			// Guarantees the activity code column and its unique index exist
			// even on databases created before codes were introduced. Without
			// the index the system degrades to unenforced code uniqueness.
			Name:     "0002_activity_code_unique",
			Optional: true,
			Run:      ensureActivityCodeColumn,
		},
		{
			Name: "0003_user_lock_flag",
			Run: func(db *gorm.DB) error {
				migrator := db.Migrator()
				if !migrator.HasColumn(&models.User{}, "locked") {
					return migrator.AddColumn(&models.User{}, "Locked")
				}
				return nil
			},
		},
	}
}

// Migrate applies all pending migrations in order.
func Migrate(db *gorm.DB, logger zerolog.Logger) error {
	log := logger.With().Str("component", "migrations").Logger()

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	for _, migration := range Migrations() {
		var count int64
		if err := db.Model(&SchemaMigration{}).Where("name = ?", migration.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to read schema_migrations: %w", err)
		}
		if count > 0 {
			continue
		}

		if err := migration.Run(db); err != nil {
			if migration.Optional {
				log.Warn().Err(err).Str("migration", migration.Name).Msg("optional migration failed, continuing")
				continue
			}
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		record := SchemaMigration{Name: migration.Name, AppliedAt: time.Now().UTC()}
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
		}
		log.Info().Str("migration", migration.Name).Msg("migration applied")
	}

	return nil
}

func ensureActivityCodeColumn(db *gorm.DB) error {
	migrator := db.Migrator()
	if !migrator.HasColumn(&models.Activity{}, "code") {
		if err := migrator.AddColumn(&models.Activity{}, "Code"); err != nil {
			return err
		}
	}
	if !migrator.HasIndex(&models.Activity{}, "ux_activities_code") {
		if err := migrator.CreateIndex(&models.Activity{}, "ux_activities_code"); err != nil {
			return err
		}
	}
	return nil
}
