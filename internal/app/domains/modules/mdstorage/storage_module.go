package mdstorage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dip/backend/internal/app/pkg/errorx"
)

// 存储 key 命名空间前缀
const (
	UploadPrefix = "uploads/"
	OutputPrefix = "outputs/"
)

// Presigner 预签名凭证签发接口（MinIO 适配器实现）
type Presigner interface {
	PresignedPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error)
	PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadGrant 上传凭证
// URL 只对 PUT 方法有效且限时，过期后泄露的凭证随即失效
type UploadGrant struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// DownloadGrant 下载凭证（只对 GET 方法有效且限时）
type DownloadGrant struct {
	URL       string
	ExpiresAt time.Time
}

// StorageModule 存储模块
// 职责：key 生成规则与预签名凭证签发，文件字节不经过本模块
type StorageModule struct {
	presigner Presigner
	grantTTL  time.Duration
}

// NewStorageModule 创建存储模块实例
func NewStorageModule(presigner Presigner, grantTTL time.Duration) *StorageModule {
	return &StorageModule{
		presigner: presigner,
		grantTTL:  grantTTL,
	}
}

// IssueUploadGrant 签发上传凭证
// key 规则：uploads/{随机 token}-{文件名}，token 保证 key 全局唯一；
// contentType 可选，提供时绑定进签名，上传方必须携带一致的 Content-Type
func (m *StorageModule) IssueUploadGrant(ctx context.Context, fileName string, contentType string) (*UploadGrant, error) {
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s-%s", UploadPrefix, uuid.New().String(), fileName)

	url, err := m.presigner.PresignedPut(ctx, key, contentType, m.grantTTL)
	if err != nil {
		return nil, fmt.Errorf("issue upload grant failed: %w", err)
	}

	return &UploadGrant{
		URL:       url,
		Key:       key,
		ExpiresAt: time.Now().Add(m.grantTTL),
	}, nil
}

// IssueDownloadGrant 签发下载凭证
func (m *StorageModule) IssueDownloadGrant(ctx context.Context, key string) (*DownloadGrant, error) {
	url, err := m.presigner.PresignedGet(ctx, key, m.grantTTL)
	if err != nil {
		return nil, fmt.Errorf("issue download grant failed: %w", err)
	}

	return &DownloadGrant{
		URL:       url,
		ExpiresAt: time.Now().Add(m.grantTTL),
	}, nil
}

// OutputKey 结果文件 key 规则：outputs/{jobID}-result.xlsx
func OutputKey(jobID string) string {
	return fmt.Sprintf("%s%s-result.xlsx", OutputPrefix, jobID)
}

// validateFileName 校验人类提供的文件名（禁止路径穿越）
func validateFileName(fileName string) error {
	if fileName == "" || strings.ContainsAny(fileName, "/\\") || strings.Contains(fileName, "..") {
		return errorx.ErrInvalidFileName
	}
	return nil
}
