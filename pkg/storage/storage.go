package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage 本地文件存储，按 workspaces/<id>/documents/<uuid><ext> 组织对象
type LocalStorage struct {
	basePath string
}

// NewLocalStorage 创建本地存储实例
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %v", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// BuildObjectPath 为上传文件生成对象路径，文件名用UUID避免冲突
func (s *LocalStorage) BuildObjectPath(workspaceID uint, filename string) string {
	ext := filepath.Ext(filename)
	return filepath.Join(
		"workspaces",
		fmt.Sprintf("%d", workspaceID),
		"documents",
		uuid.New().String()+ext,
	)
}

// Save 写入对象内容
func (s *LocalStorage) Save(objectPath string, data []byte) error {
	fullPath := filepath.Join(s.basePath, objectPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Read 读取对象内容
func (s *LocalStorage) Read(objectPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.basePath, objectPath))
}

// Delete 删除对象，不存在时视为成功
func (s *LocalStorage) Delete(objectPath string) error {
	err := os.Remove(filepath.Join(s.basePath, objectPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
