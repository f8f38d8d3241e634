package consumer

import (
	"context"
	"time"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/modules/mdjob"
	"dip/backend/internal/app/pkg/logger"
)

// Dispatcher 工作消息发布接口（mddispatch 实现）
type Dispatcher interface {
	PublishProcessJob(ctx context.Context, job *etjob.Job) error
}

// Reconciler 补偿扫描器
// 职责：周期性扫描滞留的 PENDING 任务（入库成功但消息发布失败），重新入队。
// 重复入队是安全的：worker 处理前会复核 DB 状态，重复投递退化为幂等空操作
type Reconciler struct {
	jobModule  *mdjob.JobModule
	dispatcher Dispatcher
	logger     logger.Logger

	interval       time.Duration // 扫描间隔
	staleThreshold time.Duration // PENDING 滞留判定阈值
	batchSize      int           // 单次扫描上限
}

// Config 补偿扫描配置
type Config struct {
	Interval       time.Duration
	StaleThreshold time.Duration
	BatchSize      int
}

// NewReconciler 创建补偿扫描器实例
func NewReconciler(
	jobModule *mdjob.JobModule,
	dispatcher Dispatcher,
	config *Config,
	log logger.Logger,
) *Reconciler {
	return &Reconciler{
		jobModule:      jobModule,
		dispatcher:     dispatcher,
		logger:         log,
		interval:       config.Interval,
		staleThreshold: config.StaleThreshold,
		batchSize:      config.BatchSize,
	}
}

// Start 启动扫描循环（阻塞，ctx 取消后干净退出）
func (r *Reconciler) Start(ctx context.Context) error {
	r.logger.Info("Reconciler started",
		"interval", r.interval.String(),
		"stale_threshold", r.staleThreshold.String(),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reconciler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.sweep(ctx); err != nil {
				r.logger.Error("Reconciler sweep failed", "error", err)
			}
		}
	}
}

// sweep 执行一轮扫描
func (r *Reconciler) sweep(ctx context.Context) error {
	before := time.Now().Add(-r.staleThreshold)

	jobs, err := r.jobModule.ListStalePending(ctx, before, r.batchSize)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		return nil
	}

	r.logger.Info("Re-enqueueing stale PENDING jobs", "count", len(jobs))

	for _, job := range jobs {
		if err := r.dispatcher.PublishProcessJob(ctx, job); err != nil {
			// 单个失败不中断本轮，下一轮会再次扫到
			r.logger.Warn("Re-enqueue failed", "job_id", job.ID, "error", err)
		}
	}

	return nil
}
