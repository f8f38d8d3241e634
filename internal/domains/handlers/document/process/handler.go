package process

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dip/backend/internal/common/entity"
	"dip/backend/internal/common/model"
	"dip/backend/internal/domains/common"
	"dip/backend/internal/domains/common/job"
	"dip/backend/internal/domains/common/response"
	"dip/backend/pkg/errorutil"
)

const outputContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProcessHandler 文档处理 Handler
// 流程：复核状态 -> 领取任务 -> 拉取源文件 -> 提取 -> 渲染 -> 存储产物 -> 落库 + 通知
type ProcessHandler struct {
	ctx  context.Context
	meta *job.Meta
	msg  *model.WorkMessage
	deps *common.Deps
}

// NewProcessHandler 创建文档处理 Handler
// 解析并校验业务数据
func NewProcessHandler(ctx context.Context, meta *job.Meta, payload interface{}, deps *common.Deps) (common.HandlerServ, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}

	var msg model.WorkMessage
	if err := json.Unmarshal(payloadBytes, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal work message failed: %w", err)
	}

	if msg.JobID == "" {
		return nil, fmt.Errorf("job_id is required")
	}
	if msg.InputRef == "" {
		return nil, fmt.Errorf("input_ref is required")
	}

	return &ProcessHandler{
		ctx:  ctx,
		meta: meta,
		msg:  &msg,
		deps: deps,
	}, nil
}

// GetProcess 处理文档任务
func (h *ProcessHandler) GetProcess() *response.Response {
	result := &response.Result{
		JobID: h.msg.JobID,
	}

	err := h.process(result)

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理逻辑
// 返回 nil 表示终态已落库（成功、跳过或失败已记录）；
// 返回可重试错误表示保留消息等待重投
func (h *ProcessHandler) process(result *response.Result) error {
	ctx := h.ctx
	jobID := h.msg.JobID

	// 1. 复核 DB 状态（消息携带的数据仅为提示，状态以 DB 为准）
	record, err := h.deps.JobStore.GetJobByID(ctx, jobID)
	if err != nil {
		return errorutil.RetriableWithDetails("load job failed", err.Error())
	}
	if record == nil {
		// 任务不存在：消息无法关联任何任务，按终态跳过
		result.Status = "SKIPPED"
		return errorutil.NonRetriable(fmt.Sprintf("job not found: %s", jobID))
	}
	if record.Status == entity.JobStatusCompleted || record.Status == entity.JobStatusFailed {
		// 重复投递：任务已终态，幂等空操作
		result.Status = "SKIPPED"
		return nil
	}

	// 2. 领取任务：PENDING -> PROCESSING
	claimed, err := h.deps.JobStore.MarkProcessing(ctx, jobID)
	if err != nil {
		return errorutil.RetriableWithDetails("mark processing failed", err.Error())
	}
	if !claimed && record.Status != entity.JobStatusProcessing {
		// 守卫失败且不是续作场景（上一次处理中断后的重投），按重复投递处理
		result.Status = "SKIPPED"
		return nil
	}

	// 3. 拉取源文件
	content, err := h.deps.Objects.FetchObject(ctx, record.InputRef)
	if err != nil {
		return errorutil.RetriableWithDetails("fetch input failed", err.Error())
	}

	// 4. 提取结构化内容
	doc, err := h.deps.Extractor.Extract(ctx, content, record.InputKind, record.Category)
	if err != nil {
		return h.failIfTerminal(ctx, result, err)
	}

	// 5. 渲染产物
	data, meta, err := h.deps.Exporter.Render(doc)
	if err != nil {
		return h.failIfTerminal(ctx, result, err)
	}

	// 6. 存储产物
	outputRef := fmt.Sprintf("outputs/%s-result.xlsx", jobID)
	if err := h.deps.Objects.StoreObject(ctx, outputRef, data, outputContentType); err != nil {
		return errorutil.RetriableWithDetails("store output failed", err.Error())
	}

	// 7. 落库 + 通知
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = nil
	}

	done, err := h.deps.JobStore.MarkCompleted(ctx, jobID, outputRef, metaJSON)
	if err != nil {
		return errorutil.RetriableWithDetails("mark completed failed", err.Error())
	}
	if !done {
		// 状态竞争（另一个投递抢先终态），产物已写入但不覆盖记录
		result.Status = "SKIPPED"
		return nil
	}

	result.Status = entity.JobStatusCompleted
	result.OutputRef = outputRef

	h.notify(ctx, &model.JobResultNotification{
		JobID:       jobID,
		Status:      entity.JobStatusCompleted,
		OutputRef:   outputRef,
		ProcessedAt: time.Now().Unix(),
	})

	return nil
}

// failIfTerminal 按错误的重试标记分流
// 可重试：原样返回，消息等待重投；
// 不可重试：落库 FAILED + 发布失败通知，错误继续上抛用于 Bury 判定
func (h *ProcessHandler) failIfTerminal(ctx context.Context, result *response.Result, err error) error {
	if errorutil.IsRetryable(err) {
		return err
	}

	detail := errorutil.Wrap(err).Message
	done, markErr := h.deps.JobStore.MarkFailed(ctx, h.msg.JobID, detail)
	if markErr != nil {
		// 落库失败则保留消息重投，下一次投递重新判定
		return errorutil.RetriableWithDetails("mark failed failed", markErr.Error())
	}
	if !done {
		// 状态竞争（另一个投递抢先终态），不发通知直接确认
		result.Status = "SKIPPED"
		return nil
	}

	result.Status = entity.JobStatusFailed

	h.notify(ctx, &model.JobResultNotification{
		JobID:         h.msg.JobID,
		Status:        entity.JobStatusFailed,
		FailureDetail: detail,
		ProcessedAt:   time.Now().Unix(),
	})

	return err
}

// notify 发布结果通知（尽力而为，失败不影响任务终态）
func (h *ProcessHandler) notify(ctx context.Context, n *model.JobResultNotification) {
	if h.deps.Notifier == nil {
		return
	}
	if err := h.deps.Notifier.PublishJobResult(ctx, n); err != nil {
		// 通知丢失由轮询兜底
		fmt.Printf("[WARN] publish result notification failed: job_id=%s, err=%v\n", n.JobID, err)
	}
}
