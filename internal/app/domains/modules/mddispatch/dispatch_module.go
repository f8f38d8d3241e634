package mddispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/infra/persistence/redis"
	"dip/backend/internal/common/model"
)

// Publisher 消息发布接口（lmstfy 适配器实现）
type Publisher interface {
	Publish(ctx context.Context, queue string, data interface{}) error
}

// DispatchModule 任务分发模块
// 职责：
// 1. 构造标准化工作消息并发布到处理队列
// 2. 结果频道命名规则与 Smart Wait 订阅
type DispatchModule struct {
	publisher   Publisher
	redisClient *redis.PubSubClient
	queueName   string
}

// NewDispatchModule 创建分发模块实例
func NewDispatchModule(publisher Publisher, redisClient *redis.PubSubClient, queueName string) *DispatchModule {
	return &DispatchModule{
		publisher:   publisher,
		redisClient: redisClient,
		queueName:   queueName,
	}
}

// PublishProcessJob 发布文档处理任务到队列
// 消息携带 worker 开始处理所需的最小数据集（job_id/input_ref/category），
// 当前状态仍以 DB 为准
func (m *DispatchModule) PublishProcessJob(ctx context.Context, job *etjob.Job) error {
	message := model.DocumentProcessJob{
		Payload: model.DocumentProcessPayload{
			Data: model.DocumentProcessData{
				RequestID:  uuid.New().String(), // 生成请求 ID 用于全链路追踪
				ActionType: model.ActionTypeDocumentProcess,
				ID:         job.ID,
				Data: model.WorkMessage{
					JobID:    job.ID,
					InputRef: job.InputRef,
					Category: string(job.Category),
				},
			},
		},
	}

	return m.publisher.Publish(ctx, m.queueName, message)
}

// WaitForResult 等待处理结果（Smart Wait）
// 订阅任务独立频道（业务约定：document:result:{jobID}）
func (m *DispatchModule) WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*model.JobResultNotification, error) {
	channel := fmt.Sprintf("%s%s", model.ResultChannelPrefix, jobID)

	payload, err := m.redisClient.Subscribe(ctx, channel, timeout)
	if err != nil {
		return nil, err
	}

	var result model.JobResultNotification
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
