package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the given ReportData and
// returns the file contents as a byte slice. The sheet carries the same
// content as the PDF in one continuous table: header block, line items with
// rolled-up parent rows, total row and the parent-only summary.
func GenerateExcel(data ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Progress Report"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through D).
	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1] // "D"

	// Set column widths.
	widths := []float64{12, 50, 12, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Title style: bold, 16pt.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	// Subtitle style (project metadata lines).
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Parent row style: bold on a light band, with borders.
	parentStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F0F0F0"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create parent style: %w", err)
	}

	// Leaf row style: normal with borders.
	leafStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create leaf style: %w", err)
	}

	// Total row style: bold, white on charcoal.
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  10,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header Rows (1-5) ───────────────────────────────────────────────

	// Row 1: Title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(fmt.Sprintf("Progress Report — %s", Dash(data.ProjectName))))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Rows 2-5: project metadata.
	meta := []string{
		"Project No: " + Dash(data.ProjectNo),
		"Client: " + Dash(data.ClientName),
		"Doc. No.: " + data.DocNumber,
		"Date: " + data.GeneratedDate,
	}
	for i, line := range meta {
		rowStr := fmt.Sprintf("%d", i+2)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge metadata row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(line))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtitleStyle)
	}

	// ── Row 7: Column Headers ───────────────────────────────────────────

	headers := []string{"Code", "Description", "Weight", "Progress %"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s7", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A7", lastCol+"7", headerStyle)

	// ── Data Rows (starting row 8) ──────────────────────────────────────

	row := 8
	writeRow := func(r ReportRow) {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(Dash(r.Code)))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(Indent(Dash(r.Name), r.Indent)))
		f.SetCellValue(sheetName, "C"+rowStr, r.Weight)
		f.SetCellValue(sheetName, "D"+rowStr, r.Progress)

		style := leafStyle
		if r.Parent {
			style = parentStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)

		row++
	}

	for _, r := range data.Rows {
		writeRow(r)
	}

	// Total row: overall progress only, no weight sum on the item table.
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "A"+totalRow, "—")
	f.SetCellValue(sheetName, "B"+totalRow, "Total")
	f.SetCellValue(sheetName, "C"+totalRow, "—")
	f.SetCellValue(sheetName, "D"+totalRow, data.OverallProgress)
	f.SetCellStyle(sheetName, "A"+totalRow, lastCol+totalRow, totalStyle)
	row++

	// ── Summary (rolled-up items) ───────────────────────────────────────

	// Skip a blank row.
	row++

	summaryTitle := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+summaryTitle, lastCol+summaryTitle); err != nil {
		return nil, fmt.Errorf("merge summary title: %w", err)
	}
	f.SetCellValue(sheetName, "A"+summaryTitle, "Summary — Rolled-Up Items")
	f.SetCellStyle(sheetName, "A"+summaryTitle, lastCol+summaryTitle, subtitleStyle)
	row++

	summaryHeader := fmt.Sprintf("%d", row)
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+summaryHeader, h)
	}
	f.SetCellStyle(sheetName, "A"+summaryHeader, lastCol+summaryHeader, headerStyle)
	row++

	for _, r := range data.Summary {
		writeRow(r)
	}

	summaryTotal := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "A"+summaryTotal, "—")
	f.SetCellValue(sheetName, "B"+summaryTotal, "Total")
	f.SetCellValue(sheetName, "C"+summaryTotal, data.SummaryWeight)
	f.SetCellValue(sheetName, "D"+summaryTotal, data.OverallProgress)
	f.SetCellStyle(sheetName, "A"+summaryTotal, lastCol+summaryTotal, totalStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
