package domains

import (
	"dip/backend/internal/common/model"
	"dip/backend/internal/domains/common"
	"dip/backend/internal/domains/handlers/document/process"
)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]common.HandlerServProc{
	model.ActionTypeDocumentProcess: process.NewProcessHandler,

	// 未来扩展示例：
	// "document_classify": classify.NewClassifyHandler,
}
