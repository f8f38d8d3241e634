package model

// ResultChannelPrefix 结果通知频道前缀（频道格式：document:result:{jobID}）
const ResultChannelPrefix = "document:result:"

// JobResultNotification 任务完成通知消息
// 用于 worker → apiserver 的 Redis PubSub 通知（Smart Wait）
type JobResultNotification struct {
	JobID         string `json:"job_id"`
	Status        string `json:"status"` // COMPLETED/FAILED
	OutputRef     string `json:"output_ref,omitempty"`
	FailureDetail string `json:"failure_detail,omitempty"`
	ProcessedAt   int64  `json:"processed_at"` // 处理时间戳（Unix timestamp）
}
