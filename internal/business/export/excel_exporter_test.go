package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"dip/backend/internal/business/extract"
)

func TestRenderWorkbook(t *testing.T) {
	doc := &extract.Document{
		Category: "EXPENSE",
		Fields: []extract.Field{
			{Name: "vendor", Value: "ACME Corp", Confidence: 0.98},
			{Name: "total", Value: "1024.50", Confidence: 0.95},
		},
		LineItems: [][]string{
			{"item", "qty", "price"},
			{"widget", "2", "512.25"},
		},
	}

	data, meta, err := NewExcelExporter().Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("rendered workbook is empty")
	}

	if meta.Category != "EXPENSE" || meta.FieldNum != 2 || meta.LineNum != 2 {
		t.Fatalf("result meta mismatch: %+v", meta)
	}
	if meta.SizeBytes != len(data) {
		t.Fatalf("size meta = %d, want %d", meta.SizeBytes, len(data))
	}

	// 产物必须是可打开的工作簿
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered bytes are not a valid workbook: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Fields", "A2")
	if err != nil {
		t.Fatalf("read cell failed: %v", err)
	}
	if name != "vendor" {
		t.Fatalf("Fields!A2 = %q, want vendor", name)
	}

	item, err := f.GetCellValue("LineItems", "A2")
	if err != nil {
		t.Fatalf("read cell failed: %v", err)
	}
	if item != "widget" {
		t.Fatalf("LineItems!A2 = %q, want widget", item)
	}
}

func TestRenderWithoutLineItems(t *testing.T) {
	doc := &extract.Document{
		Category: "HR",
		Fields:   []extract.Field{{Name: "employee", Value: "J. Doe", Confidence: 0.9}},
	}

	data, meta, err := NewExcelExporter().Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if meta.LineNum != 0 {
		t.Fatalf("line num = %d, want 0", meta.LineNum)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered bytes are not a valid workbook: %v", err)
	}
	defer f.Close()

	// 没有明细行就不建 LineItems Sheet
	if idx, _ := f.GetSheetIndex("LineItems"); idx >= 0 {
		t.Fatalf("LineItems sheet must not exist for empty line items")
	}
}

func TestRenderNilDocument(t *testing.T) {
	if _, _, err := NewExcelExporter().Render(nil); err == nil {
		t.Fatalf("nil document must be rejected")
	}
}
