package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/go-crew/crew/pkg/ctx"
)

// ProviderSet 提供存储相关的依赖
var ProviderSet = wire.NewSet(ProvideStorage)

// 存储类型常量
const (
	StorageMinio = "minio"
)

// Storage 存储配置结构
type Storage struct {
	Ctx       *ctx.Context
	Provider  string `mapstructure:"provider"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
}

// ProvideStorage 提供基于配置文件的存储实例
func ProvideStorage(s *Storage) (StorageProvider, error) {
	return NewStorage(s)
}

// NewStorage 根据配置创建存储提供者实例
func NewStorage(s *Storage) (StorageProvider, error) {
	switch s.Provider {
	case StorageMinio:
		return newMinio(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath 组合 BasePath 和 objectName，返回完整的对象路径
func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	// 清理路径，避免双斜杠
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	return filepath.Join(basePath, objectName)
}
