package upload

import (
	"github.com/gin-gonic/gin"

	"dip/backend/internal/app/domains/apimodel/request"
	"dip/backend/internal/app/domains/apimodel/response"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/app/pkg/ginx"
)

// Grant 申请上传凭证接口
// POST /api/v1/uploads/grant
// 返回限时 PUT URL 和 key，客户端直传存储后拿 key 提交任务
func (h *UploadHandler) Grant(c *gin.Context) {
	var req request.UploadGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	grant, err := h.storageModule.IssueUploadGrant(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		if errorx.IsValidation(err) {
			ginx.BadRequest(c, err.Error())
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "issue upload grant failed", "error", err)
		ginx.ServiceUnavailable(c, "storage temporarily unavailable")
		return
	}

	ginx.Success(c, response.FromUploadGrant(grant))
}
