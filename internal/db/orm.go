package db

import (
	"context"
	"fmt"

	"appfiy/backoffice/internal/logging"
	gormModels "appfiy/backoffice/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitPostgresORM opens the gorm handle used by the write model and the
// theme aggregate.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm postgres: %w", err)
	}
	logging.Info("Connected to Postgres via GORM")
	return gdb, nil
}

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&gormModels.LayoutType{},
		&gormModels.Theme{},
		&gormModels.ThemePage{},
		&gormModels.ThemeComponent{},
		&gormModels.MobileSupportApp{},
		&gormModels.MobileVersionMapping{},
		&gormModels.BuildDomain{},
	}
}

// AutoMigrate creates or extends the schema.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logging.Info("Schema migrated", "tables", len(Models()))
	return nil
}
