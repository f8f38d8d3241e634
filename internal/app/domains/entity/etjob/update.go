package etjob

// StatusUpdate 状态迁移的带标签变体
// 每种变体对应唯一允许的字段集合，避免 output_ref/failure_detail 交叉污染
type StatusUpdate interface {
	// Target 迁移目标状态
	Target() JobStatus
}

// ProcessingUpdate PENDING → PROCESSING（只写状态）
type ProcessingUpdate struct{}

// CompletedUpdate PROCESSING → COMPLETED（写入 output_ref 和结果摘要）
type CompletedUpdate struct {
	OutputRef  string
	ResultMeta []byte
}

// FailedUpdate PENDING/PROCESSING → FAILED（写入 failure_detail）
type FailedUpdate struct {
	Detail string
}

func (ProcessingUpdate) Target() JobStatus { return JobStatusProcessing }
func (CompletedUpdate) Target() JobStatus  { return JobStatusCompleted }
func (FailedUpdate) Target() JobStatus     { return JobStatusFailed }
