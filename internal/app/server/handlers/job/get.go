package job

import (
	"github.com/gin-gonic/gin"

	"dip/backend/internal/app/domains/apimodel/response"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/app/pkg/ginx"
	"dip/backend/internal/app/server/middlewares"
)

// Get 查询任务状态接口
// GET /api/v1/jobs/:id
// 创建任务返回 code=3001 时，通过此接口轮询结果
func (h *JobHandler) Get(c *gin.Context) {
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

	ginx.Success(c, response.FromJobEntity(job))
}
