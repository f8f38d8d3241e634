package common

import (
	"context"

	"dip/backend/internal/business/export"
	"dip/backend/internal/business/extract"
	"dip/backend/internal/common/entity"
	"dip/backend/internal/common/model"
	"dip/backend/internal/domains/common/job"
	"dip/backend/internal/domains/common/response"
)

// JobStore 任务状态存储接口（mysql.JobDAO 实现）
type JobStore interface {
	GetJobByID(ctx context.Context, jobID string) (*entity.Job, error)
	MarkProcessing(ctx context.Context, jobID string) (bool, error)
	MarkCompleted(ctx context.Context, jobID string, outputRef string, resultMeta []byte) (bool, error)
	MarkFailed(ctx context.Context, jobID string, failureDetail string) (bool, error)
}

// ObjectStore 对象存储接口（minio.ObjectStore 实现）
type ObjectStore interface {
	FetchObject(ctx context.Context, key string) ([]byte, error)
	StoreObject(ctx context.Context, key string, data []byte, contentType string) error
}

// ResultNotifier 结果通知接口（redis.PubSub 实现）
type ResultNotifier interface {
	PublishJobResult(ctx context.Context, notification *model.JobResultNotification) error
}

// Deps Handler 依赖集合（显式注入，不走 Context 传递）
type Deps struct {
	JobStore  JobStore
	Objects   ObjectStore
	Extractor extract.Extractor
	Exporter  export.Exporter
	Notifier  ResultNotifier
}

// HandlerServProc Handler 构造函数类型
type HandlerServProc func(ctx context.Context, meta *job.Meta, payload interface{}, deps *Deps) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	GetProcess() *response.Response
}
