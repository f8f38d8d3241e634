package svjob

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/entity/etprimitive"
	"dip/backend/internal/app/domains/modules/mdjob"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/app/pkg/logger"
	"dip/backend/internal/common/entity"
	"dip/backend/internal/common/model"
)

// Dispatcher 任务分发接口（mddispatch 实现）
type Dispatcher interface {
	PublishProcessJob(ctx context.Context, job *etjob.Job) error
	WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*model.JobResultNotification, error)
}

// JobService 任务服务，负责任务业务编排
type JobService struct {
	jobModule  *mdjob.JobModule
	dispatcher Dispatcher
	logger     logger.Logger
}

// NewJobService 创建任务服务实例
func NewJobService(jobModule *mdjob.JobModule, dispatcher Dispatcher, log logger.Logger) *JobService {
	return &JobService{
		jobModule:  jobModule,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Submit 提交任务（完整业务流程）
// 1. 校验文档类别（封闭枚举，非法直接拒绝，无任何副作用）
// 2. 创建任务实体并落库（PENDING）
// 3. 发布工作消息到处理队列
// 4. Smart Wait（可选，等待处理结果）
//
// 本服务不校验 input_ref 指向的对象是否存在：
// 凭证签发后由客户端直传存储，这里信任调用方（presign-then-reference 模式）
func (s *JobService) Submit(ctx context.Context, identity etprimitive.Identity, inputRef string, category string, wait time.Duration) (*etjob.Job, error) {
	cat, ok := etjob.ParseCategory(category)
	if !ok {
		return nil, errorx.ErrInvalidCategory
	}
	if inputRef == "" {
		return nil, errorx.ErrInvalidInputRef
	}

	job, err := etjob.NewJob(uuid.New().String(), identity, inputRef, cat)
	if err != nil {
		return nil, err
	}

	if err := s.jobModule.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	// 3. 发布工作消息
	// 发布失败只记录日志：任务留在 PENDING，由补偿扫描重新入队
	if err := s.dispatcher.PublishProcessJob(ctx, job); err != nil {
		s.logger.WarnContext(ctx, "publish process job failed, job left PENDING for reconciler",
			"job_id", job.ID,
			"error", err,
		)
	}

	// 4. Smart Wait（等待处理结果）
	if wait > 0 {
		result, err := s.dispatcher.WaitForResult(ctx, job.ID, wait)
		if err != nil {
			// 超时或订阅失败，只记录日志，返回在途任务
			s.logger.WarnContext(ctx, "wait for job result failed",
				"job_id", job.ID,
				"error", err,
			)
			return job, nil
		}
		applyNotification(job, result)
	}

	return job, nil
}

// GetJob 查询任务（含可见性判定）
// 未知任务和无权访问的任务统一返回 ErrJobNotFound，避免向非归属方泄露任务存在性
func (s *JobService) GetJob(ctx context.Context, jobID string, identity etprimitive.Identity) (*etjob.Job, error) {
	job, err := s.jobModule.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || !job.ReadableBy(identity) {
		return nil, errorx.ErrJobNotFound
	}
	return job, nil
}

// applyNotification 将通知结果应用到内存中的任务实体（DB 已由 worker 更新）
func applyNotification(job *etjob.Job, result *model.JobResultNotification) {
	if result == nil {
		return
	}
	switch result.Status {
	case entity.JobStatusCompleted:
		job.Status = etjob.JobStatusCompleted
		job.OutputRef = result.OutputRef
	case entity.JobStatusFailed:
		job.Status = etjob.JobStatusFailed
		job.FailureDetail = result.FailureDetail
	}
	job.UpdatedAt = time.Now()
}
