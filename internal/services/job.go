package services

import (
	"docspace/internal/models"
	apperrors "docspace/pkg/errors"

	"gorm.io/gorm"
)

// JobService 处理任务的只读视图，按文档归属工作区的成员关系放行。
// 任务的创建在文档上传事务中完成，执行与状态流转归外部流水线
type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// checkDocumentAccess 校验调用者对文档的访问权
func (s *JobService) checkDocumentAccess(user *models.User, documentID uint) error {
	var document models.Document
	err := s.db.First(&document, documentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("文档不存在")
		}
		return err
	}

	var member models.WorkspaceMember
	err = s.db.Where("workspace_id = ? AND user_id = ? AND status = ?",
		document.WorkspaceID, user.ID, models.MemberStatusActive).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.Forbidden("无权访问该文档")
		}
		return err
	}

	return nil
}

// ListByDocument 列出文档的全部处理任务
func (s *JobService) ListByDocument(user *models.User, documentID uint) ([]*models.Job, error) {
	if err := s.checkDocumentAccess(user, documentID); err != nil {
		return nil, err
	}

	var jobs []*models.Job
	err := s.db.Where("document_id = ?", documentID).Find(&jobs).Error
	return jobs, err
}

// GetByID 获取单个处理任务
func (s *JobService) GetByID(user *models.User, jobID uint) (*models.Job, error) {
	var job models.Job
	err := s.db.First(&job, jobID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("任务不存在")
		}
		return nil, err
	}

	if err := s.checkDocumentAccess(user, job.DocumentID); err != nil {
		return nil, err
	}

	return &job, nil
}
