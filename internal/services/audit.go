package services

import (
	"encoding/json"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"
	"docspace/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService 审计记录器：每个成功的变更操作追加一条记录，
// 记录必须和触发它的变更在同一个事务中落库
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record 在调用方事务内追加审计记录，失败会连带回滚整个变更
func (s *AuditService) Record(tx *gorm.DB, actor *models.User, action, objectType string, objectID *uint, metadata map[string]interface{}) error {
	log := &models.AuditLog{
		TenantID:    actor.TenantID,
		ActorUserID: actor.ID,
		Action:      action,
		ObjectType:  objectType,
		ObjectID:    objectID,
	}

	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		log.Metadata = datatypes.JSON(data)
	}

	return tx.Create(log).Error
}

// RecordStandalone 为不伴随数据变更的动作（登录、登出、下载）单独落一条审计记录
func (s *AuditService) RecordStandalone(actor *models.User, action, objectType string, objectID *uint, metadata map[string]interface{}) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.Record(tx, actor, action, objectType, objectID, metadata)
	})
}

// ListByTenant 查询租户内的审计记录（按时间倒序、分页）。
// 指定 workspaceID 时要求调用者是该工作区的 owner 或 admin
func (s *AuditService) ListByTenant(user *models.User, workspaceID *uint, page *pagination.PageParams) ([]*models.AuditLog, int64, error) {
	if workspaceID != nil {
		var member models.WorkspaceMember
		err := s.db.Where("workspace_id = ? AND user_id = ? AND status = ?",
			*workspaceID, user.ID, models.MemberStatusActive).First(&member).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, 0, apperrors.Forbidden("只有工作区的owner和admin可以查看审计日志")
			}
			return nil, 0, err
		}
		if member.Role != models.RoleOwner && member.Role != models.RoleAdmin {
			return nil, 0, apperrors.Forbidden("只有工作区的owner和admin可以查看审计日志")
		}
	}

	var logs []*models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{}).Where("tenant_id = ?", user.TenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(page.GetOffset()).Limit(page.GetLimit()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
