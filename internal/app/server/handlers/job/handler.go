package job

import (
	"dip/backend/internal/app/domains/modules/mdstorage"
	"dip/backend/internal/app/domains/services/svjob"
	"dip/backend/internal/app/pkg/logger"
)

// JobHandler 任务 HTTP 处理器
type JobHandler struct {
	jobService    *svjob.JobService
	storageModule *mdstorage.StorageModule
	logger        logger.Logger
}

// NewJobHandler 创建任务处理器实例
func NewJobHandler(jobService *svjob.JobService, storageModule *mdstorage.StorageModule, log logger.Logger) *JobHandler {
	return &JobHandler{
		jobService:    jobService,
		storageModule: storageModule,
		logger:        log,
	}
}
