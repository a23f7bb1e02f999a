package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// XLSXContentType is the media type of XLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const outlineSheet = "Outline"

// XLSX renders the outline as a workbook with one row per heading. The
// document title goes into the workbook properties and the sheet's first row.
func XLSX(o *doctree.Outline) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outlineSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: o.Title}); err != nil {
		return nil, fmt.Errorf("set properties: %w", err)
	}

	if err := f.SetSheetRow(outlineSheet, "A1", &[]any{"Title", o.Title}); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	if err := f.SetSheetRow(outlineSheet, "A3", &[]any{"Level", "Text", "Page"}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, h := range o.Outline {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(outlineSheet, cell, &[]any{string(h.Level), h.Text, h.Page}); err != nil {
			return nil, fmt.Errorf("write heading %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
