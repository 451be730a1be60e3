package services

import (
	"errors"
	"strconv"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"

	"gorm.io/gorm"
)

// WorkspaceService 工作区与成员关系服务
type WorkspaceService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewWorkspaceService(db *gorm.DB, audit *AuditService) *WorkspaceService {
	return &WorkspaceService{db: db, audit: audit}
}

// CheckAccess 工作区访问检查，固定顺序：存在性 → 租户 → 成员关系 → 角色。
// 租户不匹配和非成员都返回403，避免向跨租户调用者确认工作区是否存在
func (s *WorkspaceService) CheckAccess(user *models.User, workspaceID uint, requiredRoles ...models.WorkspaceRole) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.First(&workspace, workspaceID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("工作区不存在")
		}
		return nil, err
	}

	if workspace.TenantID != user.TenantID {
		return nil, apperrors.Forbidden("无权访问该工作区")
	}

	var member models.WorkspaceMember
	err = s.db.Where("workspace_id = ? AND user_id = ? AND status = ?",
		workspaceID, user.ID, models.MemberStatusActive).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Forbidden("不是该工作区的成员")
		}
		return nil, err
	}

	if len(requiredRoles) > 0 {
		allowed := false
		for _, role := range requiredRoles {
			if member.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, apperrors.Forbidden("权限不足")
		}
	}

	return &workspace, nil
}

// Create 创建工作区，创建者自动成为owner，两者在同一事务中落库
func (s *WorkspaceService) Create(user *models.User, name string) (*models.Workspace, error) {
	workspace := &models.Workspace{
		Name:      name,
		TenantID:  user.TenantID,
		CreatedBy: user.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		member := &models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      user.ID,
			Role:        models.RoleOwner,
			Status:      models.MemberStatusActive,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		objectID := workspace.ID
		return s.audit.Record(tx, user, models.AuditWorkspaceCreated, "workspace", &objectID, nil)
	})
	if err != nil {
		return nil, err
	}

	return workspace, nil
}

// List 列出调用者在本租户内有活跃成员关系的工作区
func (s *WorkspaceService) List(user *models.User) ([]*models.Workspace, error) {
	var workspaces []*models.Workspace
	err := s.db.Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ? AND workspace_members.status = ? AND workspaces.tenant_id = ?",
			user.ID, models.MemberStatusActive, user.TenantID).
		Find(&workspaces).Error
	return workspaces, err
}

// Get 获取单个工作区详情
func (s *WorkspaceService) Get(user *models.User, workspaceID uint) (*models.Workspace, error) {
	return s.CheckAccess(user, workspaceID)
}

// Update 重命名工作区（owner/admin）
func (s *WorkspaceService) Update(user *models.User, workspaceID uint, name string) (*models.Workspace, error) {
	workspace, err := s.CheckAccess(user, workspaceID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(workspace).Update("name", name).Error; err != nil {
			return err
		}

		objectID := workspace.ID
		return s.audit.Record(tx, user, models.AuditWorkspaceUpdated, "workspace", &objectID, nil)
	})
	if err != nil {
		return nil, err
	}

	workspace.Name = name
	return workspace, nil
}

// Delete 删除工作区（仅owner）：成员关系和工作区在同一事务中删除
func (s *WorkspaceService) Delete(user *models.User, workspaceID uint) error {
	workspace, err := s.CheckAccess(user, workspaceID, models.RoleOwner)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(workspace).Error; err != nil {
			return err
		}

		objectID := workspaceID
		return s.audit.Record(tx, user, models.AuditWorkspaceDeleted, "workspace", &objectID, nil)
	})
}

// ListMembers 列出工作区全部成员（含inactive），任何活跃成员可见
func (s *WorkspaceService) ListMembers(user *models.User, workspaceID uint) ([]*models.WorkspaceMember, error) {
	if _, err := s.CheckAccess(user, workspaceID); err != nil {
		return nil, err
	}

	var members []*models.WorkspaceMember
	err := s.db.Where("workspace_id = ?", workspaceID).Find(&members).Error
	return members, err
}

// AddMember 添加成员（owner/admin）。目标用户必须存在且与调用者同租户；
// 已存在成员记录（无论状态）时报冲突。移除后再添加得到全新记录，没有复活路径
func (s *WorkspaceService) AddMember(user *models.User, workspaceID uint, req *models.AddMemberRequest) (*models.WorkspaceMember, error) {
	if _, err := s.CheckAccess(user, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	role := models.WorkspaceRole(req.Role)
	if !role.IsValid() {
		return nil, apperrors.BadRequest("未知的角色: " + req.Role)
	}

	// 支持按邮箱或用户ID定位目标用户
	var target models.User
	var err error
	if id, convErr := strconv.ParseUint(req.EmailOrUserID, 10, 32); convErr == nil {
		err = s.db.First(&target, uint(id)).Error
	} else {
		err = s.db.Where("email = ?", req.EmailOrUserID).First(&target).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("用户不存在")
		}
		return nil, err
	}

	if target.TenantID != user.TenantID {
		return nil, apperrors.Forbidden("目标用户不在当前租户")
	}

	var count int64
	err = s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, target.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("用户已是工作区成员")
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      target.ID,
		Role:        role,
		Status:      models.MemberStatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		objectID := member.ID
		return s.audit.Record(tx, user, models.AuditWorkspaceMemberAdded, "workspace_member", &objectID,
			map[string]interface{}{"workspace_id": workspaceID, "user_id": target.ID, "role": member.Role})
	})
	if err != nil {
		// 预检查后输掉并发竞争时复合唯一约束在此触发
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("用户已是工作区成员")
		}
		return nil, err
	}

	return member, nil
}

// UpdateMember 更新成员的角色或状态（owner/admin）
func (s *WorkspaceService) UpdateMember(user *models.User, workspaceID, targetUserID uint, req *models.UpdateMemberRequest) (*models.WorkspaceMember, error) {
	if _, err := s.CheckAccess(user, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, targetUserID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("成员不存在")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Role != "" {
		role := models.WorkspaceRole(req.Role)
		if !role.IsValid() {
			return nil, apperrors.BadRequest("未知的角色: " + req.Role)
		}
		updates["role"] = role
		member.Role = role
	}
	if req.Status != "" {
		status := models.MemberStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.BadRequest("未知的状态: " + req.Status)
		}
		updates["status"] = status
		member.Status = status
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("role和status至少指定一个")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&member).Updates(updates).Error; err != nil {
			return err
		}

		objectID := member.ID
		return s.audit.Record(tx, user, models.AuditWorkspaceMemberUpdated, "workspace_member", &objectID,
			map[string]interface{}{"workspace_id": workspaceID, "user_id": targetUserID})
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// RemoveMember 移除成员（owner/admin），物理删除成员记录
func (s *WorkspaceService) RemoveMember(user *models.User, workspaceID, targetUserID uint) error {
	if _, err := s.CheckAccess(user, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}

	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, targetUserID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("成员不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&member).Error; err != nil {
			return err
		}

		objectID := targetUserID
		return s.audit.Record(tx, user, models.AuditWorkspaceMemberRemoved, "workspace_member", &objectID,
			map[string]interface{}{"workspace_id": workspaceID, "user_id": targetUserID})
	})
}
