package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/repo/rpjob"
	"dip/backend/internal/common/entity"
)

// JobDAO 任务数据访问对象（worker 侧）
// 状态迁移统一走仓储的带守卫原子 UPDATE，false 表示守卫失败（重复投递或已终态）
type JobDAO struct {
	db   *gorm.DB
	repo rpjob.JobRepository
}

// NewJobDAO 创建 JobDAO 实例
func NewJobDAO(dsn string) (*JobDAO, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewJobDAOWithDB(db), nil
}

// NewJobDAOWithDB 基于已有连接创建（测试用）
func NewJobDAOWithDB(db *gorm.DB) *JobDAO {
	return &JobDAO{
		db:   db,
		repo: rpjob.NewJobRepository(db),
	}
}

// GetJobByID 根据任务 ID 获取任务（不存在返回 nil, nil）
func (dao *JobDAO) GetJobByID(ctx context.Context, jobID string) (*entity.Job, error) {
	var job entity.Job
	result := dao.db.WithContext(ctx).Where("id = ?", jobID).First(&job)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", result.Error)
	}
	return &job, nil
}

// MarkProcessing 领取任务：PENDING -> PROCESSING
// 返回 false 表示守卫失败（任务已被领取或已终态），调用方应按幂等空操作处理
func (dao *JobDAO) MarkProcessing(ctx context.Context, jobID string) (bool, error) {
	done, err := dao.repo.ApplyUpdate(ctx, jobID, etjob.ProcessingUpdate{})
	if err != nil {
		return false, fmt.Errorf("failed to mark processing: %w", err)
	}
	return done, nil
}

// MarkCompleted 完成任务：PROCESSING -> COMPLETED，写入产物引用和结果摘要
func (dao *JobDAO) MarkCompleted(ctx context.Context, jobID string, outputRef string, resultMeta []byte) (bool, error) {
	done, err := dao.repo.ApplyUpdate(ctx, jobID, etjob.CompletedUpdate{
		OutputRef:  outputRef,
		ResultMeta: resultMeta,
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark completed: %w", err)
	}
	return done, nil
}

// MarkFailed 失败任务：PENDING/PROCESSING -> FAILED，写入失败详情
// PENDING 也允许置失败：消息不可解析等在领取前就判定终态的场景
func (dao *JobDAO) MarkFailed(ctx context.Context, jobID string, failureDetail string) (bool, error) {
	done, err := dao.repo.ApplyUpdate(ctx, jobID, etjob.FailedUpdate{Detail: failureDetail})
	if err != nil {
		return false, fmt.Errorf("failed to mark failed: %w", err)
	}
	return done, nil
}

// Close 关闭数据库连接
func (dao *JobDAO) Close() error {
	sqlDB, err := dao.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
