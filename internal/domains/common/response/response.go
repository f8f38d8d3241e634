package response

import (
	"dip/backend/internal/domains/common/job"
	"dip/backend/pkg/errorutil"
)

// Result 处理结果
type Result struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`     // COMPLETED/FAILED/SKIPPED
	OutputRef string `json:"output_ref"` // 产物存储 key（成功时）
}

// Response 统一响应结构
type Response struct {
	Error     *errorutil.Error `json:"error"`
	Result    *Result          `json:"result"`
	Processed bool             `json:"processed"`
	Meta      *job.Meta        `json:"meta"`
}

// WrapResponse 包装响应
func (r *Response) WrapResponse(result *Result, meta *job.Meta, err error) {
	if err == nil {
		r.Processed = true
	}
	r.Meta = meta
	r.Error = errorutil.Wrap(err)
	r.Result = result
}
