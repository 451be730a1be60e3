package models

import (
	"time"
)

// Workspace 工作区模型 - 租户内的协作容器，文档和成员关系都挂在其下
type Workspace struct {
	BaseModel
	Name      string `json:"name" gorm:"not null;size:100"`
	TenantID  uint   `json:"tenant_id" gorm:"not null;index"`
	CreatedBy uint   `json:"created_by" gorm:"not null"`
}

// TableName 表名
func (w *Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceRole 工作区角色，封闭枚举：owner > admin > member
type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "owner"
	RoleAdmin  WorkspaceRole = "admin"
	RoleMember WorkspaceRole = "member"
)

// IsValid 角色是否为已知值
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// MemberStatus 成员状态
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// IsValid 状态是否为已知值
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive:
		return true
	default:
		return false
	}
}

// WorkspaceMember 工作区成员关系，(workspace_id, user_id) 唯一约束封堵并发窗口
type WorkspaceMember struct {
	ID          uint          `json:"id" gorm:"primarykey"`
	WorkspaceID uint          `json:"workspace_id" gorm:"not null;uniqueIndex:uniq_workspace_user;index"`
	UserID      uint          `json:"user_id" gorm:"not null;uniqueIndex:uniq_workspace_user;index"`
	Role        WorkspaceRole `json:"role" gorm:"not null;size:20;default:'member'"`
	Status      MemberStatus  `json:"status" gorm:"not null;size:20;default:'active'"`
	JoinedAt    time.Time     `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName 表名
func (m *WorkspaceMember) TableName() string {
	return "workspace_members"
}

// ========== 请求结构 ==========

// CreateWorkspaceRequest 创建工作区请求
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateWorkspaceRequest 更新工作区请求
type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddMemberRequest 添加成员请求，目标用户可用邮箱或用户ID指定
type AddMemberRequest struct {
	EmailOrUserID string `json:"email_or_user_id" binding:"required"`
	Role          string `json:"role" binding:"required,oneof=owner admin member"`
}

// UpdateMemberRequest 更新成员请求，role/status 至少传一个
type UpdateMemberRequest struct {
	Role   string `json:"role" binding:"omitempty,oneof=owner admin member"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive"`
}
