package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dip/backend/pkg/errorutil"
)

// HTTPExtractor 基于 HTTP 提取服务的实现
// 将文件内容 POST 给提取服务，解析返回的结构化结果
type HTTPExtractor struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPExtractor 创建 HTTP 提取器
func NewHTTPExtractor(endpoint string, timeout time.Duration) *HTTPExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPExtractor{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extract 调用提取服务
// 网络错误 / 5xx 返回可重试错误；4xx（内容不可识别）返回不可重试错误
func (e *HTTPExtractor) Extract(ctx context.Context, content []byte, inputKind string, category string) (*Document, error) {
	reqURL := fmt.Sprintf("%s/v1/extract?category=%s&kind=%s",
		e.endpoint, url.QueryEscape(category), url.QueryEscape(inputKind))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(content))
	if err != nil {
		return nil, errorutil.NonRetriableWithDetails("build extract request failed", err.Error())
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, errorutil.RetriableWithDetails("extract service unreachable", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorutil.RetriableWithDetails("read extract response failed", err.Error())
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, errorutil.RetriableWithDetails(
			fmt.Sprintf("extract service error: %d", resp.StatusCode), string(body))
	case resp.StatusCode >= 400:
		// 内容不可识别属于终态失败，重投不会改变结果
		return nil, errorutil.NonRetriableWithDetails(
			fmt.Sprintf("document not extractable: %d", resp.StatusCode), string(body))
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errorutil.NonRetriableWithDetails("invalid extract response", err.Error())
	}

	if doc.Category == "" {
		doc.Category = category
	}

	return &doc, nil
}
