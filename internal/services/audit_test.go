package services

import (
	"encoding/json"
	"testing"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"
	"docspace/pkg/pagination"
)

func TestAuditListScopedToTenant(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	workspaces := NewWorkspaceService(db, audit)

	alice, _ := registerUser(t, users, "alice@example.com", "alice", "Acme")
	eve, _ := registerUser(t, users, "eve@example.com", "eve", "Globex")

	if _, err := workspaces.Create(alice, "Notes"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if _, err := workspaces.Create(eve, "Secrets"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	page := &pagination.PageParams{Page: 1, PageSize: 50}

	logs, total, err := audit.ListByTenant(alice, nil, page)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	// alice的租户：注册 + 创建工作区
	if total != 2 {
		t.Fatalf("expected 2 rows in alice's tenant, got %d", total)
	}
	for _, log := range logs {
		if log.TenantID != alice.TenantID {
			t.Fatalf("leaked row from tenant %d", log.TenantID)
		}
	}
}

func TestAuditListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	workspaces := NewWorkspaceService(db, audit)

	alice, _ := registerUser(t, users, "alice@example.com", "alice", "Acme")
	workspace, err := workspaces.Create(alice, "Notes")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if _, err := workspaces.Update(alice, workspace.ID, "Renamed"); err != nil {
		t.Fatalf("update workspace: %v", err)
	}

	logs, _, err := audit.ListByTenant(alice, nil, &pagination.PageParams{Page: 1, PageSize: 50})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(logs) < 3 {
		t.Fatalf("expected at least 3 rows, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i-1].CreatedAt.Before(logs[i].CreatedAt) {
			t.Fatalf("rows not in descending time order")
		}
	}
}

func TestAuditWorkspaceFilterRequiresAdminRole(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	workspaces := NewWorkspaceService(db, audit)

	alice, _ := registerUser(t, users, "alice@example.com", "alice", "Acme")
	bob, _ := registerUser(t, users, "bob@example.com", "bob", "")

	workspace, err := workspaces.Create(alice, "Notes")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	addMember(t, workspaces, alice, workspace.ID, bob, "member")

	page := &pagination.PageParams{Page: 1, PageSize: 50}

	// 普通 member 不能按工作区过滤
	_, _, err = audit.ListByTenant(bob, &workspace.ID, page)
	assertAppError(t, err, apperrors.CodeForbidden)

	// owner 可以
	if _, _, err := audit.ListByTenant(alice, &workspace.ID, page); err != nil {
		t.Fatalf("owner filter: %v", err)
	}

	// 提升为 admin 后也可以
	if _, err := workspaces.UpdateMember(alice, workspace.ID, bob.ID, &models.UpdateMemberRequest{Role: "admin"}); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if _, _, err := audit.ListByTenant(bob, &workspace.ID, page); err != nil {
		t.Fatalf("admin filter: %v", err)
	}
}

func TestMutationRollsBackWhenAuditWriteFails(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	workspaces := NewWorkspaceService(db, audit)

	alice, _ := registerUser(t, users, "alice@example.com", "alice", "Acme")
	workspace, err := workspaces.Create(alice, "Notes")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	// 审计表不可写时，变更必须随审计记录一并回滚
	if err := db.Migrator().DropTable(&models.AuditLog{}); err != nil {
		t.Fatalf("drop audit table: %v", err)
	}

	if _, err := workspaces.Update(alice, workspace.ID, "Renamed"); err == nil {
		t.Fatalf("expected rename to fail without a writable audit table")
	}

	var reloaded models.Workspace
	if err := db.First(&reloaded, workspace.ID).Error; err != nil {
		t.Fatalf("reload workspace: %v", err)
	}
	if reloaded.Name != "Notes" {
		t.Fatalf("rename must roll back together with its audit row, got %q", reloaded.Name)
	}

	// 注销同样回滚，账号保持可用
	if err := users.SoftDelete(alice); err == nil {
		t.Fatalf("expected soft delete to fail without a writable audit table")
	}
	var user models.User
	if err := db.First(&user, alice.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.IsDeleted || !user.IsActive {
		t.Fatalf("soft delete must roll back together with its audit row, got %+v", user)
	}
}

func TestAuditMetadataRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db)
	users := NewUserService(db, audit)
	workspaces := NewWorkspaceService(db, audit)

	alice, _ := registerUser(t, users, "alice@example.com", "alice", "Acme")
	bob, _ := registerUser(t, users, "bob@example.com", "bob", "")

	workspace, err := workspaces.Create(alice, "Notes")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	addMember(t, workspaces, alice, workspace.ID, bob, "member")

	var log models.AuditLog
	if err := db.Where("action = ?", models.AuditWorkspaceMemberAdded).First(&log).Error; err != nil {
		t.Fatalf("load audit row: %v", err)
	}
	if log.ActorUserID != alice.ID {
		t.Fatalf("expected actor %d, got %d", alice.ID, log.ActorUserID)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(log.Metadata, &metadata); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if metadata["role"] != "member" {
		t.Fatalf("expected role member in metadata, got %v", metadata)
	}
}
