package response

import "time"

// JobResponse 任务响应（DTO）
// 对外只暴露 ID 与生命周期字段，input_ref/owner 等内部字段不出站
type JobResponse struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	InputKind     string    `json:"input_kind"`
	Status        string    `json:"status"`
	FailureDetail string    `json:"failure_detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UploadGrantResponse 上传凭证响应（DTO）
type UploadGrantResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadGrantResponse 下载凭证响应（DTO）
type DownloadGrantResponse struct {
	JobID     string    `json:"job_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
