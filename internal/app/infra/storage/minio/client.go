package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client MinIO 客户端封装（凭证签发侧）
// 只签发预签名 URL，文件字节不经过 API 进程
type Client struct {
	cli    *minio.Client
	bucket string
}

// NewClient 创建 MinIO 客户端
func NewClient(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Client, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client init error: %w", err)
	}

	return &Client{cli: cli, bucket: bucket}, nil
}

// EnsureBucket 确认 bucket 存在，不存在则创建
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.cli.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}

	if !exists {
		if err := c.cli.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket: %w", err)
		}
	}

	return nil
}

// PresignedPut 签发限时上传凭证（仅 PUT 方法有效）
// contentType 非空时参与签名，客户端必须携带一致的 Content-Type 请求头
func (c *Client) PresignedPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error) {
	if contentType == "" {
		u, err := c.cli.PresignedPutObject(ctx, c.bucket, key, expiry)
		if err != nil {
			return "", fmt.Errorf("presign put error: %w", err)
		}
		return u.String(), nil
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	u, err := c.cli.PresignHeader(ctx, http.MethodPut, c.bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return "", fmt.Errorf("presign put error: %w", err)
	}
	return u.String(), nil
}

// PresignedGet 签发限时下载凭证（仅 GET 方法有效）
func (c *Client) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := c.cli.PresignedGetObject(ctx, c.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get error: %w", err)
	}
	return u.String(), nil
}
