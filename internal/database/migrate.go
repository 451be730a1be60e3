package database

import (
	"docspace/internal/models"
	"docspace/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Document{},
		&models.Job{},
		&models.AuditLog{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
