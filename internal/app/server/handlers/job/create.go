package job

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dip/backend/internal/app/domains/apimodel/request"
	"dip/backend/internal/app/domains/apimodel/response"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/app/pkg/ginx"
	"dip/backend/internal/app/server/middlewares"
)

// Create 提交任务接口
// POST /api/v1/jobs?wait=10
func (h *JobHandler) Create(c *gin.Context) {
	waitSeconds := 0
	if waitStr := c.Query("wait"); waitStr != "" {
		if w, err := strconv.Atoi(waitStr); err == nil && w > 0 {
			waitSeconds = w
		}
	}

	var req request.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	identity := middlewares.IdentityFromContext(c)

	job, err := h.jobService.Submit(c.Request.Context(), identity, req.InputRef, req.Category,
		time.Duration(waitSeconds)*time.Second)
	if err != nil {
		if errorx.IsValidation(err) {
			ginx.BadRequest(c, err.Error())
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "submit job failed", "error", err)
		ginx.InternalError(c, "submit job failed")
		return
	}

	if job.Status.InFlight() {
		pollURL := fmt.Sprintf("/api/v1/jobs/%s", job.ID)
		ginx.Processing(c, job.ID, pollURL)
		return
	}

	ginx.Success(c, response.FromJobEntity(job))
}
