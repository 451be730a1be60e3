package models

// JobType 处理任务类型
type JobType string

const (
	JobTypeTextExtraction JobType = "text_extraction"
	JobTypeEmbedding      JobType = "embedding"
	JobTypeSummarization  JobType = "summarization"
)

// JobStatus 处理任务状态
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job 文档处理任务。本服务只在上传时创建 pending 记录并入队，
// 执行、状态流转和重试都由外部的处理流水线负责
type Job struct {
	BaseModel
	DocumentID   uint      `json:"document_id" gorm:"not null;index"`
	JobType      JobType   `json:"job_type" gorm:"not null;size:30"`
	Status       JobStatus `json:"status" gorm:"not null;size:20;default:'pending'"`
	Attempts     int       `json:"attempts" gorm:"not null;default:0"`
	ErrorMessage *string   `json:"error_message" gorm:"type:text"`
}

// TableName 表名
func (j *Job) TableName() string {
	return "jobs"
}
