package upload

import (
	"dip/backend/internal/app/domains/modules/mdstorage"
	"dip/backend/internal/app/pkg/logger"
)

// UploadHandler 上传凭证 HTTP 处理器
type UploadHandler struct {
	storageModule *mdstorage.StorageModule
	logger        logger.Logger
}

// NewUploadHandler 创建上传凭证处理器实例
func NewUploadHandler(storageModule *mdstorage.StorageModule, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		storageModule: storageModule,
		logger:        log,
	}
}
