package services

import (
	"errors"

	"docspace/internal/models"
	apperrors "docspace/pkg/errors"

	"gorm.io/gorm"
)

// UserService 用户与租户服务：注册、认证、注销（软删除）
type UserService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewUserService(db *gorm.DB, audit *AuditService) *UserService {
	return &UserService{db: db, audit: audit}
}

// Register 注册用户。指定租户名则新建租户，否则复用第一个租户
// （没有任何租户时创建默认租户）。用户创建和审计记录在同一事务中提交
func (s *UserService) Register(email, username, password, tenantName string) (*models.User, *models.Tenant, error) {
	// 唯一性预检查，最终由唯一约束兜底
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, apperrors.Conflict("邮箱已被注册")
	}
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, apperrors.Conflict("用户名已被注册")
	}

	var user *models.User
	var tenant *models.Tenant

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tenant = &models.Tenant{}
		if tenantName != "" {
			tenant.Name = tenantName
			if err := tx.Create(tenant).Error; err != nil {
				return err
			}
		} else {
			// 未指定租户名时复用已有租户，便于测试环境
			err := tx.First(tenant).Error
			if err == gorm.ErrRecordNotFound {
				tenant.Name = "Default Tenant"
				if err := tx.Create(tenant).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}

		user = &models.User{
			Email:    email,
			Username: username,
			TenantID: tenant.ID,
			IsActive: true,
		}
		if err := user.SetPassword(password); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		objectID := user.ID
		return s.audit.Record(tx, user, models.AuditUserRegistered, "user", &objectID, nil)
	})
	if err != nil {
		// 预检查后输掉并发竞争时唯一约束在此触发
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.Conflict("邮箱或用户名已被注册")
		}
		return nil, nil, err
	}

	return user, tenant, nil
}

// Authenticate 用邮箱或用户名加密码认证。凭证错误和账号被禁用/删除
// 一律按未认证处理，不区分提示以免泄露账号状态
func (s *UserService) Authenticate(emailOrUsername, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Unauthorized("邮箱/用户名或密码错误")
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.Unauthorized("邮箱/用户名或密码错误")
	}

	if !user.CanAuthenticate() {
		return nil, apperrors.Unauthorized("账号已被禁用或删除")
	}

	objectID := user.ID
	if err := s.audit.RecordStandalone(&user, models.AuditUserLoggedIn, "user", &objectID, nil); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetActiveByID 按ID加载可用账号，供身份解析使用：
// 不存在、被禁用或已软删除的账号都视为认证失败
func (s *UserService) GetActiveByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_active = ? AND is_deleted = ?", id, true, false).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Unauthorized("用户不存在或已被禁用")
		}
		return nil, err
	}
	return &user, nil
}

// GetTenant 获取用户所属租户
func (s *UserService) GetTenant(user *models.User) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, user.TenantID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("租户不存在")
		}
		return nil, err
	}
	return &tenant, nil
}

// SoftDelete 软删除当前账号：置 is_deleted 并停用，不做物理删除
func (s *UserService) SoftDelete(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"is_active":  false,
			}).Error
		if err != nil {
			return err
		}

		objectID := user.ID
		return s.audit.Record(tx, user, models.AuditUserDeleted, "user", &objectID, nil)
	})
}

// RecordLogout 登出只做审计，令牌在到期前仍然有效（无吊销列表）
func (s *UserService) RecordLogout(user *models.User) error {
	objectID := user.ID
	return s.audit.RecordStandalone(user, models.AuditUserLoggedOut, "user", &objectID, nil)
}
