package models

import (
	"time"

	"gorm.io/datatypes"
)

// 审计动作常量，固定 <资源>.<动作> 约定
const (
	AuditUserRegistered         = "user.registered"
	AuditUserLoggedIn           = "user.logged_in"
	AuditUserLoggedOut          = "user.logged_out"
	AuditUserDeleted            = "user.deleted"
	AuditWorkspaceCreated       = "workspace.created"
	AuditWorkspaceUpdated       = "workspace.updated"
	AuditWorkspaceDeleted       = "workspace.deleted"
	AuditWorkspaceMemberAdded   = "workspace.member_added"
	AuditWorkspaceMemberUpdated = "workspace.member_updated"
	AuditWorkspaceMemberRemoved = "workspace.member_removed"
	AuditDocumentUploaded       = "document.uploaded"
	AuditDocumentUpdated        = "document.updated"
	AuditDocumentDownloaded     = "document.downloaded"
	AuditDocumentDeleted        = "document.deleted"
)

// AuditLog 审计日志，只追加：没有更新和删除路径
type AuditLog struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	TenantID    uint           `json:"tenant_id" gorm:"not null;index"`
	ActorUserID uint           `json:"actor_user_id" gorm:"not null"`
	Action      string         `json:"action" gorm:"not null;size:100"`
	ObjectType  string         `json:"object_type" gorm:"not null;size:50"`
	ObjectID    *uint          `json:"object_id"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"type:json"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName 表名
func (a *AuditLog) TableName() string {
	return "audit_logs"
}
