package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisQueue 文档处理任务队列，服务端只负责入队，
// 消费与重试由外部的处理流水线完成
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// JobMessage 队列中的处理任务消息
type JobMessage struct {
	JobID       uint   `json:"job_id"`
	JobType     string `json:"job_type"`
	DocumentID  uint   `json:"document_id"`
	WorkspaceID uint   `json:"workspace_id"`
	TenantID    uint   `json:"tenant_id"`
	StoragePath string `json:"storage_path"`
	Created     int64  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "docspace:jobs"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// EnqueueJob 将处理任务加入队列
func (q *RedisQueue) EnqueueJob(jobID uint, jobType string, documentID, workspaceID, tenantID uint, storagePath string) error {
	ctx := context.Background()

	message := JobMessage{
		JobID:       jobID,
		JobType:     jobType,
		DocumentID:  documentID,
		WorkspaceID: workspaceID,
		TenantID:    tenantID,
		StoragePath: storagePath,
		Created:     time.Now().Unix(),
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化任务消息失败: %v", err)
	}

	return q.client.RPush(ctx, q.queueKey(), data).Err()
}

// queueKey 队列键名
func (q *RedisQueue) queueKey() string {
	return q.prefix + ":pending"
}
