package services

import (
	"fmt"
	"testing"
)

func makeRows(n int) []ReportRow {
	rows := make([]ReportRow, n)
	for i := range rows {
		rows[i] = ReportRow{Code: fmt.Sprintf("%d", i+1), Name: fmt.Sprintf("Item %d", i+1)}
	}
	return rows
}

func TestPaginateSplitsRows(t *testing.T) {
	pages := Paginate(ReportData{Rows: makeRows(25)})

	// Cover + 3 line-item pages (10 + 10 + 5).
	if len(pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(pages))
	}

	if !pages[0].Cover {
		t.Error("first page should be the cover")
	}
	if len(pages[0].Rows) != 0 {
		t.Error("cover page should carry no rows")
	}

	for i, want := range []int{10, 10, 5} {
		if got := len(pages[i+1].Rows); got != want {
			t.Errorf("page %d row count = %d, want %d", i+2, got, want)
		}
	}

	// Rows stay in stored order across the split.
	if pages[1].Rows[0].Code != "1" || pages[2].Rows[0].Code != "11" || pages[3].Rows[0].Code != "21" {
		t.Error("rows out of order across pages")
	}
}

func TestPaginateTotalAndSummaryOnLastPage(t *testing.T) {
	pages := Paginate(ReportData{Rows: makeRows(25)})

	for i, p := range pages[:len(pages)-1] {
		if p.TotalRow || p.Summary {
			t.Errorf("page %d should not carry total row or summary", i+1)
		}
	}

	last := pages[len(pages)-1]
	if !last.TotalRow {
		t.Error("last page should carry the total row")
	}
	if !last.Summary {
		t.Error("last page should carry the summary table")
	}
}

func TestPaginateStampsNumbering(t *testing.T) {
	pages := Paginate(ReportData{Rows: makeRows(12)})

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d Number = %d", i+1, p.Number)
		}
		if p.Total != 3 {
			t.Errorf("page %d Total = %d, want 3", i+1, p.Total)
		}
	}
}

func TestPaginateExactBudgetBoundary(t *testing.T) {
	pages := Paginate(ReportData{Rows: makeRows(10)})

	// Exactly one full line-item page; no trailing empty page.
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[1].Rows) != 10 {
		t.Errorf("line-item page rows = %d, want 10", len(pages[1].Rows))
	}
	if !pages[1].TotalRow || !pages[1].Summary {
		t.Error("single line-item page should carry total row and summary")
	}
}

func TestPaginateSummarySharesLastPageWhenItFits(t *testing.T) {
	data := ReportData{Rows: makeRows(14), Summary: makeRows(4)}
	pages := Paginate(data)

	// Cover + 2 line-item pages; last page holds 4 rows + 4 summary rows.
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	last := pages[len(pages)-1]
	if !last.TotalRow || !last.Summary {
		t.Error("fitting summary should share the last line-item page")
	}
}

func TestPaginateSummarySpillsToOwnPage(t *testing.T) {
	data := ReportData{Rows: makeRows(10), Summary: makeRows(6)}
	pages := Paginate(data)

	// Cover + one full line-item page + a trailing summary-only page.
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}

	itemPage := pages[1]
	if !itemPage.TotalRow {
		t.Error("total row stays on the last line-item page")
	}
	if itemPage.Summary {
		t.Error("crowded summary should not share the line-item page")
	}

	summaryPage := pages[2]
	if !summaryPage.Summary {
		t.Error("trailing page should carry the summary")
	}
	if summaryPage.TotalRow || len(summaryPage.Rows) != 0 {
		t.Errorf("summary page should carry nothing else: %+v", summaryPage)
	}
	if summaryPage.Number != 3 || summaryPage.Total != 3 {
		t.Errorf("summary page numbering = %d of %d, want 3 of 3", summaryPage.Number, summaryPage.Total)
	}
}

func TestPaginateEmptyProject(t *testing.T) {
	pages := Paginate(ReportData{})

	// Cover plus one line-item page holding only the synthetic total row.
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[1].Rows) != 0 {
		t.Errorf("empty project line-item page rows = %d, want 0", len(pages[1].Rows))
	}
	if !pages[1].TotalRow {
		t.Error("empty project still renders the total row")
	}
}
