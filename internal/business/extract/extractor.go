package extract

import "context"

// Field 提取出的结构化字段
type Field struct {
	Name       string  `json:"name"`       // 字段名（如 vendor/total/date）
	Value      string  `json:"value"`      // 字段值
	Confidence float64 `json:"confidence"` // 置信度 [0,1]
}

// Document 提取结果文档
type Document struct {
	Category  string     `json:"category"`   // 文档类别（EXPENSE/HR）
	Fields    []Field    `json:"fields"`     // 键值字段
	LineItems [][]string `json:"line_items"` // 明细行（表格数据）
}

// Extractor 文档内容提取接口
// 输入源文件内容和类别，输出结构化文档；
// 错误需携带重试标记（errorutil），网络类错误可重试，内容类错误不可重试
type Extractor interface {
	Extract(ctx context.Context, content []byte, inputKind string, category string) (*Document, error)
}
