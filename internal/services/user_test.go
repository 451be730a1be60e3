package services

import (
	"testing"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"

	"gorm.io/gorm"
)

func TestRegisterCreatesUserTenantAndAuditRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	user, tenant, err := svc.Register("alice@example.com", "alice", "password123", "Acme")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if tenant.Name != "Acme" {
		t.Fatalf("expected tenant Acme, got %s", tenant.Name)
	}
	if user.TenantID != tenant.ID {
		t.Fatalf("user not attached to tenant: %d != %d", user.TenantID, tenant.ID)
	}
	if !user.IsActive || user.IsDeleted {
		t.Fatalf("fresh user should be active and not deleted")
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	if got := countAuditRows(t, db, models.AuditUserRegistered); got != 1 {
		t.Fatalf("expected 1 audit row, got %d", got)
	}

	var log models.AuditLog
	if err := db.Where("action = ?", models.AuditUserRegistered).First(&log).Error; err != nil {
		t.Fatalf("load audit row: %v", err)
	}
	if log.ActorUserID != user.ID || log.TenantID != tenant.ID {
		t.Fatalf("audit row misattributed: actor=%d tenant=%d", log.ActorUserID, log.TenantID)
	}
}

func TestRegisterWithoutTenantNameReusesExistingTenant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	_, first := registerUser(t, svc, "alice@example.com", "alice", "Acme")
	_, second := registerUser(t, svc, "bob@example.com", "bob", "")

	if first.ID != second.ID {
		t.Fatalf("expected bob to join existing tenant %d, got %d", first.ID, second.ID)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	registerUser(t, svc, "alice@example.com", "alice", "Acme")

	_, _, err := svc.Register("alice@example.com", "other", "password123", "")
	assertAppError(t, err, apperrors.CodeConflict)

	// 失败的调用不产生审计记录
	if got := countAuditRows(t, db, models.AuditUserRegistered); got != 1 {
		t.Fatalf("expected 1 audit row after failed register, got %d", got)
	}
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	registerUser(t, svc, "alice@example.com", "alice", "Acme")

	_, _, err := svc.Register("other@example.com", "alice", "password123", "")
	assertAppError(t, err, apperrors.CodeConflict)
}

func TestAuthenticateByEmailOrUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	created, _ := registerUser(t, svc, "alice@example.com", "alice", "Acme")

	byEmail, err := svc.Authenticate("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("wrong user resolved: %d", byEmail.ID)
	}

	byUsername, err := svc.Authenticate("alice", "password123")
	if err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
	if byUsername.ID != created.ID {
		t.Fatalf("wrong user resolved: %d", byUsername.ID)
	}

	if got := countAuditRows(t, db, models.AuditUserLoggedIn); got != 2 {
		t.Fatalf("expected 2 login audit rows, got %d", got)
	}
}

func TestAuthenticateWrongPasswordUnauthorized(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	registerUser(t, svc, "alice@example.com", "alice", "Acme")

	_, err := svc.Authenticate("alice", "wrong-password")
	assertAppError(t, err, apperrors.CodeUnauthorized)

	if got := countAuditRows(t, db, models.AuditUserLoggedIn); got != 0 {
		t.Fatalf("failed login must not produce audit rows, got %d", got)
	}
}

func TestAuthenticateUnknownUserUnauthorized(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	_, err := svc.Authenticate("nobody@example.com", "password123")
	assertAppError(t, err, apperrors.CodeUnauthorized)
}

func TestSoftDeleteBlocksAuthenticationAndResolution(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	user, _ := registerUser(t, svc, "alice@example.com", "alice", "Acme")

	if err := svc.SoftDelete(user); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("soft-deleted user must still exist in storage: %v", err)
	}
	if !stored.IsDeleted || stored.IsActive {
		t.Fatalf("expected is_deleted=true is_active=false, got %v/%v", stored.IsDeleted, stored.IsActive)
	}

	_, err := svc.Authenticate("alice", "password123")
	assertAppError(t, err, apperrors.CodeUnauthorized)

	_, err = svc.GetActiveByID(user.ID)
	assertAppError(t, err, apperrors.CodeUnauthorized)

	if got := countAuditRows(t, db, models.AuditUserDeleted); got != 1 {
		t.Fatalf("expected 1 delete audit row, got %d", got)
	}
}

func TestRegisterLosingUniqueRaceConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewAuditService(db))

	_, tenant := registerUser(t, svc, "alice@example.com", "alice", "Acme")

	// 预检查通过后、用户行落库前插入同邮箱记录，模拟并发注册
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("concurrent_register", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "users" {
			return
		}
		injected = true
		rival := &models.User{
			Email:        "carol@example.com",
			Username:     "carol2",
			PasswordHash: "x",
			TenantID:     tenant.ID,
			IsActive:     true,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error; err != nil {
			t.Errorf("inject rival user: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, _, err = svc.Register("carol@example.com", "carol", "password123", "")
	assertAppError(t, err, apperrors.CodeConflict)

	// 输掉竞争一方的事务整体回滚，不留半条记录
	var count int64
	db.Model(&models.User{}).Where("email = ?", "carol@example.com").Count(&count)
	if count != 0 {
		t.Fatalf("expected race loser's transaction to roll back, got %d rows", count)
	}
}
