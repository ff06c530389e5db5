package services

import (
	"fmt"
	"math"
	"time"

	"github.com/pocketbase/pocketbase"

	"progresstracker/progress"
	"progresstracker/store"
)

// Signatory is one name block in the report's signature section.
type Signatory struct {
	Name        string
	Designation string
	Company     string
}

// PreparedBy is the left-hand signatory; it additionally carries a date.
type PreparedBy struct {
	Signatory
	Date string
}

// maxApprovers is the number of approver columns the signature block can hold.
const maxApprovers = 3

// ReportMeta is the caller-supplied metadata for one report run. Every field
// is optional; blanks degrade to em-dashes or are omitted from their line.
type ReportMeta struct {
	Entity     string
	PBNumber   string
	PreparedBy PreparedBy
	Approvers  []Signatory
}

// ReportRow is one line-item table row. Parent rows display their rolled-up
// weight/progress and render bold; leaves show their raw stored fields.
type ReportRow struct {
	Code     string
	Name     string
	Indent   int
	Parent   bool
	Weight   float64
	Progress float64
}

// ReportData holds everything the paginator and renderers consume.
type ReportData struct {
	ProjectName string
	ProjectNo   string
	ClientName  string
	Letterhead  Letterhead

	PBNumber      string
	DocNumber     string
	FileName      string
	GeneratedDate string

	Rows            []ReportRow
	Summary         []ReportRow // parent rows only
	SummaryWeight   float64     // sum of summary row weights
	OverallProgress float64

	PreparedBy PreparedBy
	Approvers  []Signatory
}

// RoundedOverall is the integer completion percentage interpolated into the
// certification paragraph and synchronized to the project record.
func (d ReportData) RoundedOverall() int {
	return int(math.Round(d.OverallProgress))
}

// CertificationText is the cover-page certification paragraph.
func (d ReportData) CertificationText() string {
	return fmt.Sprintf(
		"This is to certify that, based on the measured work breakdown structure as of %s, "+
			"the overall physical progress of %q stands at %d%% completion. "+
			"This statement is issued against progress billing cycle %s under reference %s.",
		d.GeneratedDate, d.ProjectName, d.RoundedOverall(), Dash(d.PBNumber), d.DocNumber,
	)
}

// BuildReportData assembles a progress report from the project's live WBS
// list. Reports over a restored snapshot go through the same path: restoring
// replaces the live list first.
func BuildReportData(app *pocketbase.PocketBase, projectID string, meta ReportMeta) (ReportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return ReportData{}, fmt.Errorf("report: project not found: %w", err)
	}

	items, err := store.NewWBS(app).Load(projectID)
	if err != nil {
		return ReportData{}, fmt.Errorf("report: %w", err)
	}

	return assembleReportData(
		project.GetString("name"),
		project.GetString("project_no"),
		project.GetString("client_name"),
		items,
		meta,
		time.Now(),
	), nil
}

// assembleReportData is the pure core of BuildReportData, split out so the
// row/summary derivation is testable without a PocketBase app.
func assembleReportData(projectName, projectNo, clientName string, items []progress.Item, meta ReportMeta, now time.Time) ReportData {
	h := progress.Derive(items)

	rows := make([]ReportRow, 0, len(items))
	var summary []ReportRow
	var summaryWeight float64

	for _, it := range items {
		row := ReportRow{
			Code:     it.Code,
			Name:     it.Name,
			Indent:   progress.IndentLevel(it.Code),
			Weight:   it.Weight,
			Progress: it.Progress,
		}
		if h.IsParent(it.Code) {
			r := h.Rollup(it.Code)
			row.Parent = true
			row.Weight = r.Weight
			row.Progress = r.Progress
		}
		rows = append(rows, row)

		if row.Parent {
			summary = append(summary, row)
			summaryWeight += row.Weight
		}
	}

	approvers := meta.Approvers
	if len(approvers) > maxApprovers {
		approvers = approvers[:maxApprovers]
	}

	return ReportData{
		ProjectName:     projectName,
		ProjectNo:       projectNo,
		ClientName:      clientName,
		Letterhead:      LetterheadFor(meta.Entity),
		PBNumber:        meta.PBNumber,
		DocNumber:       DocumentNumber(projectNo, meta.PBNumber),
		FileName:        ReportFileName(projectNo, meta.PBNumber),
		GeneratedDate:   now.Format("02 Jan 2006"),
		Rows:            rows,
		Summary:         summary,
		SummaryWeight:   summaryWeight,
		OverallProgress: progress.Overall(items),
		PreparedBy:      meta.PreparedBy,
		Approvers:       approvers,
	}
}
