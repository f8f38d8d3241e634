package mdstorage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dip/backend/internal/app/pkg/errorx"
)

// fakePresigner 记录调用参数的假签发器
type fakePresigner struct {
	putKey         string
	putContentType string
	getKey         string
	err            error
}

func (p *fakePresigner) PresignedPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.putKey = key
	p.putContentType = contentType
	return "https://storage.local/put/" + key, nil
}

func (p *fakePresigner) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.getKey = key
	return "https://storage.local/get/" + key, nil
}

func TestIssueUploadGrant(t *testing.T) {
	presigner := &fakePresigner{}
	module := NewStorageModule(presigner, 5*time.Minute)

	grant, err := module.IssueUploadGrant(context.Background(), "r.jpg", "")
	if err != nil {
		t.Fatalf("IssueUploadGrant failed: %v", err)
	}

	// key 规则：uploads/{随机 token}-{文件名}
	if !strings.HasPrefix(grant.Key, UploadPrefix) {
		t.Fatalf("key = %q, want uploads/ prefix", grant.Key)
	}
	if !strings.HasSuffix(grant.Key, "-r.jpg") {
		t.Fatalf("key = %q, want -r.jpg suffix", grant.Key)
	}
	if grant.Key == UploadPrefix+"-r.jpg" {
		t.Fatalf("key must carry a random token")
	}
	if grant.URL == "" {
		t.Fatalf("grant must carry a presigned URL")
	}
	if grant.ExpiresAt.Before(time.Now()) {
		t.Fatalf("grant must not be already expired")
	}
	if presigner.putKey != grant.Key {
		t.Fatalf("presigner key mismatch: %q vs %q", presigner.putKey, grant.Key)
	}
}

func TestIssueUploadGrantBindsContentType(t *testing.T) {
	presigner := &fakePresigner{}
	module := NewStorageModule(presigner, time.Minute)

	if _, err := module.IssueUploadGrant(context.Background(), "invoice.pdf", "application/pdf"); err != nil {
		t.Fatalf("IssueUploadGrant failed: %v", err)
	}
	if presigner.putContentType != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", presigner.putContentType)
	}

	// 不提供 content type 时不做约束
	if _, err := module.IssueUploadGrant(context.Background(), "invoice.pdf", ""); err != nil {
		t.Fatalf("IssueUploadGrant failed: %v", err)
	}
	if presigner.putContentType != "" {
		t.Fatalf("content type = %q, want empty", presigner.putContentType)
	}
}

func TestIssueUploadGrantDistinctKeys(t *testing.T) {
	module := NewStorageModule(&fakePresigner{}, time.Minute)

	first, err := module.IssueUploadGrant(context.Background(), "r.jpg", "")
	if err != nil {
		t.Fatalf("IssueUploadGrant failed: %v", err)
	}
	second, err := module.IssueUploadGrant(context.Background(), "r.jpg", "")
	if err != nil {
		t.Fatalf("IssueUploadGrant failed: %v", err)
	}
	if first.Key == second.Key {
		t.Fatalf("same file name must get distinct keys")
	}
}

func TestIssueUploadGrantRejectsBadFileName(t *testing.T) {
	module := NewStorageModule(&fakePresigner{}, time.Minute)

	for _, name := range []string{"", "a/b.jpg", `a\b.jpg`, "..secret"} {
		if _, err := module.IssueUploadGrant(context.Background(), name, ""); !errors.Is(err, errorx.ErrInvalidFileName) {
			t.Fatalf("file name %q error = %v, want ErrInvalidFileName", name, err)
		}
	}
}

func TestIssueDownloadGrant(t *testing.T) {
	presigner := &fakePresigner{}
	module := NewStorageModule(presigner, time.Minute)

	grant, err := module.IssueDownloadGrant(context.Background(), "outputs/job-1-result.xlsx")
	if err != nil {
		t.Fatalf("IssueDownloadGrant failed: %v", err)
	}
	if grant.URL == "" {
		t.Fatalf("grant must carry a presigned URL")
	}
	if presigner.getKey != "outputs/job-1-result.xlsx" {
		t.Fatalf("presigner key = %q", presigner.getKey)
	}
}

func TestGrantInfraFailure(t *testing.T) {
	module := NewStorageModule(&fakePresigner{err: errors.New("storage down")}, time.Minute)

	if _, err := module.IssueUploadGrant(context.Background(), "r.jpg", ""); err == nil {
		t.Fatalf("infra failure must surface")
	}
	if _, err := module.IssueDownloadGrant(context.Background(), "outputs/x"); err == nil {
		t.Fatalf("infra failure must surface")
	}
}

func TestOutputKey(t *testing.T) {
	if got := OutputKey("job-1"); got != "outputs/job-1-result.xlsx" {
		t.Fatalf("OutputKey = %q", got)
	}
}
