package rpjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/entity/etprimitive"
	"dip/backend/internal/common/entity"
)

// JobRepositoryImpl 任务仓储实现（MySQL）
type JobRepositoryImpl struct {
	db *gorm.DB
}

// NewJobRepository 创建任务仓储实例
func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

// Create 创建任务，将领域对象转换为 GORM 模型后存储
func (r *JobRepositoryImpl) Create(ctx context.Context, job *etjob.Job) error {
	return r.db.WithContext(ctx).Create(r.toGormModel(job)).Error
}

// GetByID 根据ID查询任务，将 GORM 模型转换为领域对象
func (r *JobRepositoryImpl) GetByID(ctx context.Context, jobID string) (*etjob.Job, error) {
	var po entity.Job
	err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomainModel(&po), nil
}

// ApplyUpdate 执行状态迁移
// 守卫条件编码在 WHERE 子句中：同一任务的并发迁移不会交错，
// 守卫不通过时 RowsAffected 为 0
func (r *JobRepositoryImpl) ApplyUpdate(ctx context.Context, jobID string, update etjob.StatusUpdate) (bool, error) {
	guards, updates, err := updateClauses(update)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ? AND status IN ?", jobID, guards).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// updateClauses 把迁移变体展开为守卫状态集合和待写列
func updateClauses(update etjob.StatusUpdate) ([]string, map[string]interface{}, error) {
	updates := map[string]interface{}{
		"status":     string(update.Target()),
		"updated_at": time.Now(),
	}

	switch u := update.(type) {
	case etjob.ProcessingUpdate:
		return []string{entity.JobStatusPending}, updates, nil
	case etjob.CompletedUpdate:
		updates["output_ref"] = u.OutputRef
		if len(u.ResultMeta) > 0 {
			updates["result_meta"] = u.ResultMeta
		}
		return []string{entity.JobStatusProcessing}, updates, nil
	case etjob.FailedUpdate:
		updates["failure_detail"] = u.Detail
		return []string{entity.JobStatusPending, entity.JobStatusProcessing}, updates, nil
	default:
		return nil, nil, fmt.Errorf("unsupported status update: %T", update)
	}
}

// ListStalePending 查询滞留的 PENDING 任务
func (r *JobRepositoryImpl) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*etjob.Job, error) {
	var pos []entity.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", entity.JobStatusPending, before).
		Order("updated_at ASC").
		Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*etjob.Job, 0, len(pos))
	for i := range pos {
		jobs = append(jobs, r.toDomainModel(&pos[i]))
	}
	return jobs, nil
}

// toGormModel 领域对象转换为 GORM 模型
func (r *JobRepositoryImpl) toGormModel(job *etjob.Job) *entity.Job {
	return &entity.Job{
		ID:            job.ID,
		OwnerID:       job.Owner.PrincipalID(),
		InputRef:      job.InputRef,
		InputKind:     job.InputKind,
		Category:      string(job.Category),
		Status:        string(job.Status),
		OutputRef:     job.OutputRef,
		FailureDetail: job.FailureDetail,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}

// toDomainModel GORM 模型转换为领域对象
func (r *JobRepositoryImpl) toDomainModel(po *entity.Job) *etjob.Job {
	return &etjob.Job{
		ID:            po.ID,
		Owner:         etprimitive.IdentityFromOwnerColumn(po.OwnerID),
		InputRef:      po.InputRef,
		InputKind:     po.InputKind,
		Category:      etjob.Category(po.Category),
		Status:        etjob.JobStatus(po.Status),
		OutputRef:     po.OutputRef,
		FailureDetail: po.FailureDetail,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}
