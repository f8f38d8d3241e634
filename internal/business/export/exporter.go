package export

import "dip/backend/internal/business/extract"

// ResultMeta 渲染结果摘要（落库到 result_meta 字段）
type ResultMeta struct {
	Category  string `json:"category"`
	FieldNum  int    `json:"field_num"`
	LineNum   int    `json:"line_num"`
	SizeBytes int    `json:"size_bytes"`
}

// Exporter 产物渲染接口：将结构化文档渲染为可下载文件
type Exporter interface {
	Render(doc *extract.Document) ([]byte, *ResultMeta, error)
}
