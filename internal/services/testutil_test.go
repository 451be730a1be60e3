package services

import (
	stderrors "errors"
	"testing"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 内存库必须限制为单连接，否则每个连接各有一份空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Document{},
		&models.Job{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// registerUser 注册测试用户
func registerUser(t *testing.T, svc *UserService, email, username, tenantName string) (*models.User, *models.Tenant) {
	t.Helper()

	user, tenant, err := svc.Register(email, username, "password123", tenantName)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user, tenant
}

// assertAppError 断言错误为指定错误码的业务错误
func assertAppError(t *testing.T, err error, code int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %d, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %d, got %d (%s)", code, appErr.Code, appErr.Message)
	}
}

// countAuditRows 统计指定动作的审计记录数
func countAuditRows(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.AuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	return count
}
