package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Vertical budget of one A4 page body in mm, after margins. The signature
// block and footer are anchored against this so they sit at the same offset
// from the page bottom on every page regardless of how much table content
// precedes them.
const pageContentHeight = 267

const footerHeight = 6

// GeneratePDF renders the prepared report pages into a PDF document using
// maroto/v2. logo may be nil (fetch failed or not configured); rendering
// proceeds without the image. It returns the raw PDF bytes or an error.
func GeneratePDF(data ReportData, logo []byte) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	for _, p := range Paginate(data) {
		m.AddPages(buildPage(data, p, logo))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate progress report PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// pageBuilder accumulates rows for one page and tracks consumed height so
// the signature block can be pushed to its fixed bottom anchor.
type pageBuilder struct {
	page core.Page
	used float64
}

func newPageBuilder() *pageBuilder {
	return &pageBuilder{page: page.New()}
}

func (b *pageBuilder) addRow(height float64, cols ...core.Col) {
	b.page.Add(row.New(height).Add(cols...))
	b.used += height
}

func buildPage(data ReportData, p ReportPage, logo []byte) core.Page {
	b := newPageBuilder()

	addLetterhead(b, data, logo)
	addProjectMeta(b, data)

	switch {
	case p.Cover:
		addCertification(b, data)
	case len(p.Rows) > 0 || p.TotalRow:
		addItemTable(b, data, p)
		if p.Summary {
			addSummaryTable(b, data)
		}
	default:
		// Trailing summary-only page.
		addSummaryTable(b, data)
	}

	// Filler pushes the signature block down to its fixed bottom offset.
	sigHeight := signatureHeight(data)
	if filler := pageContentHeight - footerHeight - sigHeight - b.used; filler > 0 {
		b.addRow(filler)
	}

	addSignatures(b, data)
	addFooter(b, data, p)

	return b.page
}

// addLetterhead adds the reporting-entity banner: logo (when available),
// entity name and contact line, and the document title.
func addLetterhead(b *pageBuilder, data ReportData, logo []byte) {
	nameWidth := 8
	cols := make([]core.Col, 0, 3)

	if logo != nil {
		ext := extension.Png
		if logoExtension(data.Letterhead.LogoURL) == "jpg" {
			ext = extension.Jpg
		}
		cols = append(cols, col.New(2).Add(
			image.NewFromBytes(logo, ext, props.Rect{Center: true, Percent: 90}),
		))
		nameWidth = 6
	}

	cols = append(cols,
		col.New(nameWidth).Add(
			text.New(data.Letterhead.Name, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(fmt.Sprintf("%s | %s", data.Letterhead.Address, data.Letterhead.Email), props.Text{
				Top:   7,
				Size:  8,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			}),
		),
		col.New(4).Add(
			text.New("PROGRESS REPORT", props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &props.Color{Red: 33, Green: 37, Blue: 41},
			}),
		),
	)

	b.addRow(14, cols...)
	b.addRow(2)
}

// addProjectMeta adds the project metadata block repeated on every page.
func addProjectMeta(b *pageBuilder, data ReportData) {
	label := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	value := props.Text{Size: 9, Align: align.Left}
	rightLabel := label
	rightLabel.Align = align.Right
	rightValue := value
	rightValue.Align = align.Right

	b.addRow(6,
		col.New(2).Add(text.New("Project:", label)),
		col.New(6).Add(text.New(Dash(data.ProjectName), value)),
		col.New(2).Add(text.New("Project No:", rightLabel)),
		col.New(2).Add(text.New(Dash(data.ProjectNo), rightValue)),
	)
	b.addRow(6,
		col.New(2).Add(text.New("Client:", label)),
		col.New(6).Add(text.New(Dash(data.ClientName), value)),
		col.New(2).Add(text.New("Date:", rightLabel)),
		col.New(2).Add(text.New(data.GeneratedDate, rightValue)),
	)
	b.addRow(3)
}

// addCertification adds the cover-page-only project status and certification
// statement sections.
func addCertification(b *pageBuilder, data ReportData) {
	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 33, Green: 37, Blue: 41},
	}

	b.addRow(8, col.New(12).Add(text.New("PROJECT STATUS", sectionLabel)))
	b.addRow(14, col.New(12).Add(
		text.New(fmt.Sprintf("Overall Progress: %d%%", data.RoundedOverall()), props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	))
	b.addRow(4)

	b.addRow(8, col.New(12).Add(text.New("CERTIFICATION STATEMENT", sectionLabel)))
	b.addRow(24, col.New(12).Add(
		text.New(data.CertificationText(), props.Text{
			Size:  9,
			Align: align.Left,
		}),
	))
	b.addRow(4)

	b.addRow(6, col.New(12).Add(
		text.New(fmt.Sprintf("Billing Cycle: %s", Dash(data.PBNumber)), props.Text{
			Size:  9,
			Align: align.Left,
		}),
	))
}

var tableHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
var parentRowBg = &props.Color{Red: 240, Green: 240, Blue: 240}

// addTableHeader adds the column header row shared by the item and summary
// tables.
func addTableHeader(b *pageBuilder) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: tableHeaderBg}

	b.addRow(8,
		col.New(2).Add(text.New("Code", headerTextLeft)).WithStyle(&headerCell),
		col.New(6).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Weight", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Progress", headerText)).WithStyle(&headerCell),
	)
}

// addItemTable adds this page's slice of the flat item table, plus the
// synthetic total row on the final line-item page.
func addItemTable(b *pageBuilder, data ReportData, p ReportPage) {
	addTableHeader(b)

	for _, r := range p.Rows {
		addValueRow(b, r)
	}

	if p.TotalRow {
		addTotalRow(b, "Total", -1, data.OverallProgress)
	}
}

// addValueRow adds one table row; parent rows render bold on a gray band and
// show rolled-up values, leaves show their raw stored fields.
func addValueRow(b *pageBuilder, r ReportRow) {
	textStyle := fontstyle.Normal
	var cellStyle *props.Cell
	if r.Parent {
		textStyle = fontstyle.Bold
		cellStyle = &props.Cell{BackgroundColor: parentRowBg}
	}

	base := props.Text{Size: 8, Style: textStyle, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	cols := []core.Col{
		col.New(2).Add(text.New(Dash(r.Code), left)),
		col.New(6).Add(text.New(Indent(Dash(r.Name), r.Indent), left)),
		col.New(2).Add(text.New(FormatWeight(r.Weight), right)),
		col.New(2).Add(text.New(FormatPercent(r.Progress), right)),
	}
	if cellStyle != nil {
		for i, c := range cols {
			cols[i] = c.WithStyle(cellStyle)
		}
	}

	b.addRow(7, cols...)
}

// addTotalRow adds a synthetic total row. A negative weight renders as the
// blank placeholder (the item-table total carries no weight sum).
func addTotalRow(b *pageBuilder, label string, weight, overall float64) {
	style := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	right := style
	right.Align = align.Right
	cell := &props.Cell{BackgroundColor: tableHeaderBg}
	white := &props.Color{Red: 255, Green: 255, Blue: 255}
	style.Color = white
	right.Color = white

	weightStr := "—"
	if weight >= 0 {
		weightStr = FormatWeight(weight)
	}

	b.addRow(7,
		col.New(2).Add(text.New("—", style)).WithStyle(cell),
		col.New(6).Add(text.New(label, style)).WithStyle(cell),
		col.New(2).Add(text.New(weightStr, right)).WithStyle(cell),
		col.New(2).Add(text.New(FormatPercent(overall), right)).WithStyle(cell),
	)
}

// addSummaryTable adds the closing parent-only rollup table on the last
// line-item page.
func addSummaryTable(b *pageBuilder, data ReportData) {
	b.addRow(4)
	b.addRow(7, col.New(12).Add(
		text.New("SUMMARY — ROLLED-UP ITEMS", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: &props.Color{Red: 33, Green: 37, Blue: 41},
		}),
	))

	addTableHeader(b)
	for _, r := range data.Summary {
		addValueRow(b, r)
	}
	addTotalRow(b, "Total", data.SummaryWeight, data.OverallProgress)
}

// signatureHeight is the height of the signature section for this report's
// approver layout: one extra band when approvers get their own full-width row.
func signatureHeight(data ReportData) float64 {
	if len(data.Approvers) > 1 {
		return 68
	}
	return 34
}

// addSignatures renders the signature block. "Prepared by" always sits on the
// left; a single approver sits to its right, while several approvers share a
// full-width row beneath it, one equal-width column each.
func addSignatures(b *pageBuilder, data ReportData) {
	if len(data.Approvers) == 1 {
		b.addRow(34,
			signatureCol(6, "Prepared by", data.PreparedBy.Signatory, data.PreparedBy.Date),
			signatureCol(6, "Approved by", data.Approvers[0], ""),
		)
		return
	}

	b.addRow(34,
		signatureCol(6, "Prepared by", data.PreparedBy.Signatory, data.PreparedBy.Date),
		col.New(6),
	)

	if len(data.Approvers) > 1 {
		size := 12 / len(data.Approvers)
		cols := make([]core.Col, 0, len(data.Approvers))
		for _, a := range data.Approvers {
			cols = append(cols, signatureCol(size, "Approved by", a, ""))
		}
		b.addRow(34, cols...)
	}
}

// signatureCol builds one stacked signatory block.
func signatureCol(size int, label string, s Signatory, date string) core.Col {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	lineStyle := props.Text{
		Top:   8,
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{Size: 8, Align: align.Center}

	name := valueStyle
	name.Top = 14
	name.Style = fontstyle.Bold
	designation := valueStyle
	designation.Top = 19
	company := valueStyle
	company.Top = 24
	dateStyle := valueStyle
	dateStyle.Top = 29

	components := []core.Component{
		text.New(label, labelStyle),
		text.New("____________________________", lineStyle),
		text.New(Dash(s.Name), name),
		text.New(Dash(s.Designation), designation),
		text.New(Dash(s.Company), company),
	}
	if label == "Prepared by" {
		components = append(components, text.New(fmt.Sprintf("Date: %s", Dash(date)), dateStyle))
	}

	return col.New(size).Add(components...)
}

// addFooter stamps the document identifier and final page numbering. This
// runs after pagination completed, so the total is known for every page.
func addFooter(b *pageBuilder, data ReportData, p ReportPage) {
	b.addRow(footerHeight,
		col.New(6).Add(
			text.New(fmt.Sprintf("Doc. No.: %s", data.DocNumber), props.Text{
				Size:  7,
				Align: align.Left,
				Color: &props.Color{Red: 120, Green: 120, Blue: 120},
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Page %d of %d", p.Number, p.Total), props.Text{
				Size:  7,
				Align: align.Right,
				Color: &props.Color{Red: 120, Green: 120, Blue: 120},
			}),
		),
	)
}
