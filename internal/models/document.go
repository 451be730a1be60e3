package models

// DocumentStatus 文档处理状态
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document 文档模型，上传后为 pending，状态流转由外部处理流水线驱动
type Document struct {
	BaseModel
	WorkspaceID uint           `json:"workspace_id" gorm:"not null;index"`
	UploadedBy  uint           `json:"uploaded_by" gorm:"not null"`
	Filename    string         `json:"filename" gorm:"not null;size:255"`
	MimeType    string         `json:"mime_type" gorm:"not null;size:100"`
	SizeBytes   int64          `json:"size_bytes" gorm:"not null"`
	StoragePath string         `json:"storage_path" gorm:"not null;size:512"`
	Status      DocumentStatus `json:"status" gorm:"not null;size:20;default:'pending'"`
}

// TableName 表名
func (d *Document) TableName() string {
	return "documents"
}

// UpdateDocumentRequest 更新文档元数据请求
type UpdateDocumentRequest struct {
	Filename string `json:"filename" binding:"required,min=1,max=255"`
}
