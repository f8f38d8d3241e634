package rpjob

import (
	"context"
	"time"

	"dip/backend/internal/app/domains/entity/etjob"
)

// JobRepository 任务仓储接口（只定义，不实现）
// 实现在 infra/persistence 层
type JobRepository interface {
	// Create 创建任务（初始状态 PENDING）
	Create(ctx context.Context, job *etjob.Job) error

	// GetByID 根据ID查询任务（不存在返回 nil, nil）
	GetByID(ctx context.Context, jobID string) (*etjob.Job, error)

	// ApplyUpdate 执行一次状态迁移（单条原子 UPDATE，带当前状态守卫）
	// 返回 false 表示守卫不通过（并发迁移已发生或任务已终态）
	ApplyUpdate(ctx context.Context, jobID string, update etjob.StatusUpdate) (bool, error)

	// ListStalePending 查询滞留的 PENDING 任务（updated_at 早于 before）
	// 用于补偿扫描：入库成功但消息发布失败的任务
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*etjob.Job, error)
}
