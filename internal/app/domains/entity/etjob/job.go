package etjob

import (
	"errors"
	"strings"
	"time"

	"dip/backend/internal/app/domains/entity/etprimitive"
)

// 错误定义
var (
	ErrInvalidJobID    = errors.New("job ID cannot be empty")
	ErrInvalidInputRef = errors.New("input ref cannot be empty")
	ErrInvalidCategory = errors.New("unknown document category")
)

// Job 文档处理任务聚合根（领域对象）
type Job struct {
	ID            string               // 任务ID (UUID)
	Owner         etprimitive.Identity // 归属身份（创建后不可变）
	InputRef      string               // 源文件存储 key（创建后不可变）
	InputKind     string               // 输入分类（扩展名，创建时推导）
	Category      Category             // 文档类别（创建后不可变）
	Status        JobStatus            // 任务状态
	OutputRef     string               // 结果文件存储 key（仅 COMPLETED）
	FailureDetail string               // 失败诊断信息（仅 FAILED）
	CreatedAt     time.Time            // 创建时间
	UpdatedAt     time.Time            // 更新时间
}

// JobStatus 任务状态
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// IsTerminal 是否终态（终态之后不再迁移）
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// InFlight 是否在途（PENDING 和 PROCESSING 对读方等价，除非需要区分是否已被认领）
func (s JobStatus) InFlight() bool {
	return s == JobStatusPending || s == JobStatusProcessing
}

// CanTransition 状态迁移表
// PENDING → PROCESSING / FAILED；PROCESSING → COMPLETED / FAILED
func (s JobStatus) CanTransition(to JobStatus) bool {
	switch s {
	case JobStatusPending:
		return to == JobStatusProcessing || to == JobStatusFailed
	case JobStatusProcessing:
		return to == JobStatusCompleted || to == JobStatusFailed
	default:
		return false
	}
}

// Category 文档类别（封闭枚举，决定下游抽取/导出路径）
type Category string

const (
	CategoryExpense Category = "EXPENSE"
	CategoryHR      Category = "HR"
)

// ParseCategory 解析文档类别（大小写不敏感）
func ParseCategory(input string) (Category, bool) {
	switch Category(strings.ToUpper(strings.TrimSpace(input))) {
	case CategoryExpense:
		return CategoryExpense, true
	case CategoryHR:
		return CategoryHR, true
	default:
		return "", false
	}
}

// InputKindUnknown input_kind 的兜底值（input_ref 无扩展名时）
const InputKindUnknown = "unknown"

// DeriveInputKind 从 input_ref 推导输入分类（最后一个 '.' 之后的扩展名）
func DeriveInputKind(inputRef string) string {
	base := inputRef
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return InputKindUnknown
	}
	return strings.ToLower(base[idx+1:])
}

// NewJob 创建任务（工厂方法）
func NewJob(id string, owner etprimitive.Identity, inputRef string, category Category) (*Job, error) {
	// 业务规则校验
	if id == "" {
		return nil, ErrInvalidJobID
	}
	if inputRef == "" {
		return nil, ErrInvalidInputRef
	}
	if _, ok := ParseCategory(string(category)); !ok {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	return &Job{
		ID:        id,
		Owner:     owner,
		InputRef:  inputRef,
		InputKind: DeriveInputKind(inputRef),
		Category:  category,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ReadableBy 可见性判定
// 匿名任务对任何持有 ID 的请求可见（有意为之的信任取舍，产品层评审项，不在此收紧）
func (j *Job) ReadableBy(identity etprimitive.Identity) bool {
	if j.Owner.IsAnonymous() {
		return true
	}
	return j.Owner.Equal(identity)
}
