package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dip/backend/internal/business/extract"
	"dip/backend/pkg/errorutil"
)

const (
	fieldsSheet = "Fields"
	itemsSheet  = "LineItems"
)

// ExcelExporter XLSX 渲染实现
// 两个 Sheet：Fields（键值字段 + 置信度）、LineItems（明细行）
type ExcelExporter struct{}

// NewExcelExporter 创建 XLSX 渲染器
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Render 渲染文档为 XLSX
// 渲染失败均为不可重试错误：输入不变，重投不会改变结果
func (e *ExcelExporter) Render(doc *extract.Document) ([]byte, *ResultMeta, error) {
	if doc == nil {
		return nil, nil, errorutil.NonRetriable("nil document")
	}

	f := excelize.NewFile()
	defer f.Close()

	// Sheet 1: Fields
	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return nil, nil, errorutil.NonRetriableWithDetails("rename sheet failed", err.Error())
	}

	headers := []string{"Name", "Value", "Confidence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(fieldsSheet, cell, h)
	}

	for row, field := range doc.Fields {
		nameCell, _ := excelize.CoordinatesToCellName(1, row+2)
		valueCell, _ := excelize.CoordinatesToCellName(2, row+2)
		confCell, _ := excelize.CoordinatesToCellName(3, row+2)
		_ = f.SetCellValue(fieldsSheet, nameCell, field.Name)
		_ = f.SetCellValue(fieldsSheet, valueCell, field.Value)
		_ = f.SetCellValue(fieldsSheet, confCell, field.Confidence)
	}

	_ = f.SetColWidth(fieldsSheet, "A", "A", 24)
	_ = f.SetColWidth(fieldsSheet, "B", "B", 48)
	_ = f.SetColWidth(fieldsSheet, "C", "C", 12)

	// Sheet 2: LineItems（有明细行才创建）
	if len(doc.LineItems) > 0 {
		if _, err := f.NewSheet(itemsSheet); err != nil {
			return nil, nil, errorutil.NonRetriableWithDetails("create sheet failed", err.Error())
		}

		for row, line := range doc.LineItems {
			for col, v := range line {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+1)
				_ = f.SetCellValue(itemsSheet, cell, v)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, errorutil.NonRetriableWithDetails(
			fmt.Sprintf("write workbook failed for category %s", doc.Category), err.Error())
	}

	data := buf.Bytes()
	meta := &ResultMeta{
		Category:  doc.Category,
		FieldNum:  len(doc.Fields),
		LineNum:   len(doc.LineItems),
		SizeBytes: len(data),
	}

	return data, meta, nil
}
