package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"progresstracker/testhelpers"
)

func TestHandleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Export PDF")
	testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil Works", 100, 0)
	testhelpers.CreateTestWBSItem(t, app, project.Id, 2, "1.1", "Foundation", 40, 100)
	testhelpers.CreateTestWBSItem(t, app, project.Id, 3, "1.2", "Superstructure", 60, 50)

	form := url.Values{}
	form.Set("pb_number", "2")
	form.Set("prepared_by_name", "R. Iyer")
	form.Set("approver1_name", "K. Menon")

	req := newFormRequest("/api/app/projects/"+project.Id+"/export/pdf", form)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "PRJ-001-PB-02.pdf") {
		t.Errorf("Content-Disposition = %q, want filename PRJ-001-PB-02.pdf", cd)
	}

	body := rec.Body.Bytes()
	if len(body) == 0 {
		t.Fatal("empty response body")
	}
	if string(body[:5]) != "%PDF-" {
		t.Errorf("body does not start with PDF header, got %q", string(body[:5]))
	}
}

func TestHandleExportPDF_EmptyProjectStillRenders(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Empty Export")

	req := newFormRequest("/api/app/projects/"+project.Id+"/export/pdf", url.Values{})
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for empty project, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty response body")
	}
}

func TestHandleExportPDF_UnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newFormRequest("/api/app/projects/missing/export/pdf", url.Values{})
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Export Excel")
	testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil Works", 50, 80)
	testhelpers.CreateTestWBSItem(t, app, project.Id, 2, "2", "MEP", 50, 20)

	form := url.Values{}
	form.Set("pb_number", "3")

	req := newFormRequest("/api/app/projects/"+project.Id+"/export/excel", form)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleExportExcel(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "PRJ-001-PB-03.xlsx") {
		t.Errorf("Content-Disposition = %q, want filename PRJ-001-PB-03.xlsx", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty response body")
	}
}

func TestReportMetaFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("entity", "fss-interiors")
	form.Set("pb_number", "4")
	form.Set("prepared_by_name", "R. Iyer")
	form.Set("prepared_by_date", "05 Nov 2024")
	form.Set("approver1_name", "A")
	// approver2 left blank: skipped entirely.
	form.Set("approver3_name", "C")
	form.Set("approver3_designation", "Client Rep")

	req := newFormRequest("/export", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, req, rec)

	meta := reportMetaFromForm(e)
	if meta.Entity != "fss-interiors" || meta.PBNumber != "4" {
		t.Errorf("unexpected meta: %+v", meta)
	}
	if meta.PreparedBy.Name != "R. Iyer" || meta.PreparedBy.Date != "05 Nov 2024" {
		t.Errorf("unexpected prepared-by: %+v", meta.PreparedBy)
	}
	if len(meta.Approvers) != 2 {
		t.Fatalf("expected 2 approvers (blank skipped), got %d", len(meta.Approvers))
	}
	if meta.Approvers[1].Designation != "Client Rep" {
		t.Errorf("approver designation = %q", meta.Approvers[1].Designation)
	}
}
