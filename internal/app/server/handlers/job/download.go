package job

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"dip/backend/internal/app/domains/apimodel/response"
	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/app/pkg/ginx"
	"dip/backend/internal/app/server/middlewares"
)

// Download 获取结果下载凭证接口
// GET /api/v1/jobs/:id/download
// 结果未就绪返回"处理中"（与"未找到"/"已失败"显式区分）；
// FAILED 的任务永远不会拿到下载 URL
func (h *JobHandler) Download(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		ginx.BadRequest(c, "job_id required")
		return
	}

	identity := middlewares.IdentityFromContext(c)

	job, err := h.jobService.GetJob(c.Request.Context(), jobID, identity)
	if err != nil {
		if !errorx.IsNotFound(err) {
			h.logger.ErrorContext(c.Request.Context(), "get job failed", "job_id", jobID, "error", err)
		}
		ginx.NotFound(c, "job not found")
		return
	}

	switch job.Status {
	case etjob.JobStatusCompleted:
		grant, err := h.storageModule.IssueDownloadGrant(c.Request.Context(), job.OutputRef)
		if err != nil {
			h.logger.ErrorContext(c.Request.Context(), "issue download grant failed", "job_id", jobID, "error", err)
			ginx.ServiceUnavailable(c, "storage temporarily unavailable")
			return
		}
		ginx.Success(c, response.FromDownloadGrant(job.ID, grant))

	case etjob.JobStatusFailed:
		ginx.Failed(c, job.ID, job.FailureDetail)

	default:
		pollURL := fmt.Sprintf("/api/v1/jobs/%s/download", job.ID)
		ginx.Processing(c, job.ID, pollURL)
	}
}
