package model

// DocumentProcessJob 文档处理任务消息（标准化）
// 用于 apiserver → worker 的消息传递
type DocumentProcessJob struct {
	Payload DocumentProcessPayload `json:"payload"`
}

// DocumentProcessPayload Job 负载
type DocumentProcessPayload struct {
	Data DocumentProcessData `json:"data"`
}

// DocumentProcessData Job 数据层
type DocumentProcessData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（全链路追踪）
	ActionType string `json:"action_type"` // 动作类型，固定值 "document_process"
	ID         string `json:"id"`          // 任务 ID

	// 业务数据
	Data WorkMessage `json:"data"`
}

// WorkMessage 工作消息业务数据
// 携带 worker 开始处理所需的最小数据集，状态以 DB 为准
type WorkMessage struct {
	JobID    string `json:"job_id"`    // 任务 ID
	InputRef string `json:"input_ref"` // 源文件存储 key
	Category string `json:"category"`  // 文档类别（EXPENSE/HR）
}

// ActionTypeDocumentProcess 文档处理动作类型（路由键）
const ActionTypeDocumentProcess = "document_process"
