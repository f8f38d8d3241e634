package mdjob

import (
	"context"
	"time"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/repo/rpjob"
)

// JobModule 任务模块（数据操作层）
type JobModule struct {
	jobRepo rpjob.JobRepository
}

// NewJobModule 创建任务模块
func NewJobModule(jobRepo rpjob.JobRepository) *JobModule {
	return &JobModule{jobRepo: jobRepo}
}

// CreateJob 创建任务
func (m *JobModule) CreateJob(ctx context.Context, job *etjob.Job) error {
	return m.jobRepo.Create(ctx, job)
}

// GetJob 查询任务
func (m *JobModule) GetJob(ctx context.Context, jobID string) (*etjob.Job, error) {
	return m.jobRepo.GetByID(ctx, jobID)
}

// ListStalePending 查询滞留的 PENDING 任务（补偿扫描用）
func (m *JobModule) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*etjob.Job, error) {
	return m.jobRepo.ListStalePending(ctx, before, limit)
}
