package request

// CreateJobRequest 提交任务请求
// input_ref 必须引用一次已完成的上传（由上传凭证接口返回的 key）
type CreateJobRequest struct {
	InputRef string `json:"input_ref" binding:"required" example:"uploads/550e8400-abc-invoice.pdf"`
	Category string `json:"category" binding:"required" example:"EXPENSE"`
}

// UploadGrantRequest 申请上传凭证请求
type UploadGrantRequest struct {
	FileName    string `json:"file_name" binding:"required" example:"invoice.pdf"`
	ContentType string `json:"content_type" example:"application/pdf"`
}
