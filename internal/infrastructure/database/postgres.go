package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Schema holds every TalentNest table in Postgres
const Schema = "talentnest"

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: Schema + ".",
		},
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// Models lists the persisted models in migration order
func Models() []interface{} {
	return []interface{}{
		&repositories.DBUser{},
		&repositories.DBProviderProfile{},
		&repositories.DBProviderDocument{},
		&repositories.DBAuditLog{},
	}
}

// AutoMigrate performs database migration for all required tables,
// including the Casbin policy table used for RBAC
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + Schema).Error; err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// The adapter creates casbin_rule on construction
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}

// Ping checks that the database answers
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
