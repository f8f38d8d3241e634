package job

// Meta 消息元数据（从标准消息信封提取）
type Meta struct {
	RequestID  string // 请求 ID（全链路追踪）
	ActionType string // 动作类型（路由键）
	ID         string // 业务 ID（任务 ID）
}
