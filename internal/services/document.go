package services

import (
	"docspace/internal/models"
	"docspace/pkg/config"
	apperrors "docspace/pkg/errors"
	"docspace/pkg/logger"
	"docspace/pkg/pagination"
	"docspace/pkg/queue"
	"docspace/pkg/storage"

	"gorm.io/gorm"
)

// DocumentService 文档服务：上传、元数据维护、下载、删除。
// 所有操作按文档归属工作区的成员关系放行，不区分角色
type DocumentService struct {
	db      *gorm.DB
	audit   *AuditService
	storage *storage.LocalStorage
	queue   *queue.RedisQueue
	upload  config.UploadConfig
}

func NewDocumentService(db *gorm.DB, audit *AuditService, store *storage.LocalStorage, jobQueue *queue.RedisQueue, upload config.UploadConfig) *DocumentService {
	return &DocumentService{
		db:      db,
		audit:   audit,
		storage: store,
		queue:   jobQueue,
		upload:  upload,
	}
}

// checkAccess 文档访问检查：先存在性（404），再归属工作区的活跃成员关系（403）
func (s *DocumentService) checkAccess(user *models.User, documentID uint) (*models.Document, error) {
	var document models.Document
	err := s.db.First(&document, documentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("文档不存在")
		}
		return nil, err
	}

	if err := s.requireMembership(user, document.WorkspaceID); err != nil {
		return nil, err
	}

	return &document, nil
}

// requireMembership 要求调用者是工作区的活跃成员
func (s *DocumentService) requireMembership(user *models.User, workspaceID uint) error {
	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ? AND status = ?",
		workspaceID, user.ID, models.MemberStatusActive).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.Forbidden("不是该工作区的成员")
		}
		return err
	}
	return nil
}

// ValidateUpload 校验上传文件的类型和大小。
// 接口层在读入文件内容之前先用声明的大小调用，避免超限文件进内存
func (s *DocumentService) ValidateUpload(mimeType string, size int64) error {
	allowed := false
	for _, t := range s.upload.AllowedTypes {
		if t == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.BadRequest("不支持的文件类型: " + mimeType)
	}

	if size > s.upload.MaxSizeBytes {
		return apperrors.BadRequest("文件超过大小限制")
	}

	return nil
}

// Upload 上传文档：写入存储后，文档记录、pending状态的文本提取任务
// 和审计记录在同一事务中落库，最后把任务投递给外部处理流水线
func (s *DocumentService) Upload(user *models.User, workspace *models.Workspace, filename, mimeType string, data []byte) (*models.Document, error) {
	if err := s.ValidateUpload(mimeType, int64(len(data))); err != nil {
		return nil, err
	}

	objectPath := s.storage.BuildObjectPath(workspace.ID, filename)
	if err := s.storage.Save(objectPath, data); err != nil {
		return nil, apperrors.Internal("保存文件失败")
	}

	document := &models.Document{
		WorkspaceID: workspace.ID,
		UploadedBy:  user.ID,
		Filename:    filename,
		MimeType:    mimeType,
		SizeBytes:   int64(len(data)),
		StoragePath: objectPath,
		Status:      models.DocumentStatusPending,
	}
	job := &models.Job{
		JobType: models.JobTypeTextExtraction,
		Status:  models.JobStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(document).Error; err != nil {
			return err
		}

		job.DocumentID = document.ID
		if err := tx.Create(job).Error; err != nil {
			return err
		}

		objectID := document.ID
		return s.audit.Record(tx, user, models.AuditDocumentUploaded, "document", &objectID,
			map[string]interface{}{"workspace_id": workspace.ID, "filename": filename})
	})
	if err != nil {
		// 记录未落库，清掉已写入的文件
		if cleanupErr := s.storage.Delete(objectPath); cleanupErr != nil {
			logger.GetLogger().Errorf("Failed to cleanup stored object %s: %v", objectPath, cleanupErr)
		}
		return nil, err
	}

	// 投递给外部处理流水线；失败不影响上传结果，外部有补偿扫描
	if s.queue != nil {
		if err := s.queue.EnqueueJob(job.ID, string(job.JobType), document.ID, workspace.ID, workspace.TenantID, objectPath); err != nil {
			logger.GetLogger().Errorf("Failed to enqueue job %d for document %d: %v", job.ID, document.ID, err)
		}
	}

	return document, nil
}

// List 列出工作区内的文档（按上传时间倒序、分页），调用方需先通过工作区访问检查
func (s *DocumentService) List(workspaceID uint, page *pagination.PageParams) ([]*models.Document, int64, error) {
	var documents []*models.Document
	var total int64

	query := s.db.Model(&models.Document{}).Where("workspace_id = ?", workspaceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(page.GetOffset()).Limit(page.GetLimit()).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// Get 获取文档元数据
func (s *DocumentService) Get(user *models.User, documentID uint) (*models.Document, error) {
	return s.checkAccess(user, documentID)
}

// Update 更新文档元数据（当前只有文件名）
func (s *DocumentService) Update(user *models.User, documentID uint, req *models.UpdateDocumentRequest) (*models.Document, error) {
	document, err := s.checkAccess(user, documentID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(document).Update("filename", req.Filename).Error; err != nil {
			return err
		}

		objectID := document.ID
		return s.audit.Record(tx, user, models.AuditDocumentUpdated, "document", &objectID, nil)
	})
	if err != nil {
		return nil, err
	}

	document.Filename = req.Filename
	return document, nil
}

// Download 下载检查：返回文档并记录审计
func (s *DocumentService) Download(user *models.User, documentID uint) (*models.Document, error) {
	document, err := s.checkAccess(user, documentID)
	if err != nil {
		return nil, err
	}

	objectID := document.ID
	if err := s.audit.RecordStandalone(user, models.AuditDocumentDownloaded, "document", &objectID, nil); err != nil {
		return nil, err
	}

	return document, nil
}

// Delete 删除文档记录及其处理任务，存储对象随后尽力清理
func (s *DocumentService) Delete(user *models.User, documentID uint) error {
	document, err := s.checkAccess(user, documentID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(document).Error; err != nil {
			return err
		}

		objectID := documentID
		return s.audit.Record(tx, user, models.AuditDocumentDeleted, "document", &objectID, nil)
	})
	if err != nil {
		return err
	}

	if err := s.storage.Delete(document.StoragePath); err != nil {
		logger.GetLogger().Errorf("Failed to delete stored object %s: %v", document.StoragePath, err)
	}

	return nil
}
