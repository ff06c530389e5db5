package services

// RowsPerPage is the fixed line-item budget of one table page.
const RowsPerPage = 10

// ReportPage is one prepared output page. Pages are built first with unknown
// final numbering; Paginate's finalize pass stamps Number and Total once the
// page count is known, which is what lets every footer carry "Page X of Y".
type ReportPage struct {
	Number int
	Total  int

	// Cover marks the certification page; it carries no table rows and is the
	// only page with the project status / certification section.
	Cover bool

	// Rows is this page's slice of the flat item table, in stored order.
	Rows []ReportRow

	// TotalRow marks the last line-item page, which appends the synthetic
	// overall total row beneath the table.
	TotalRow bool

	// Summary marks the page carrying the closing parent-only summary table:
	// the last line-item page when it fits the shared row budget, otherwise a
	// trailing page of its own.
	Summary bool
}

// Paginate turns report data into the final page sequence: a cover page, one
// or more line-item pages with a fixed row budget, the synthetic total row on
// the last of them and the parent summary either alongside it or, when the
// combined tables would crowd the bottom-anchored signature block, on a
// trailing page of its own. Every page is later drawn with the repeated
// letterhead, the fixed-position signature block and the footer.
func Paginate(data ReportData) []ReportPage {
	pages := []ReportPage{{Cover: true}}

	// An empty project still produces one line-item page holding just the
	// synthetic total row, so a report is always complete.
	rows := data.Rows
	for first := true; first || len(rows) > 0; first = false {
		n := min(len(rows), RowsPerPage)
		pages = append(pages, ReportPage{Rows: rows[:n]})
		rows = rows[n:]
	}

	last := len(pages) - 1
	pages[last].TotalRow = true

	if len(pages[last].Rows)+len(data.Summary) <= RowsPerPage {
		pages[last].Summary = true
	} else {
		pages = append(pages, ReportPage{Summary: true})
	}

	return finalize(pages)
}

// finalize stamps page numbers and the shared total. Kept as a separate pass:
// footers depend on the final count, so they cannot be emitted while pages
// are still being produced.
func finalize(pages []ReportPage) []ReportPage {
	for i := range pages {
		pages[i].Number = i + 1
		pages[i].Total = len(pages)
	}
	return pages
}
