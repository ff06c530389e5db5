package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"progresstracker/testhelpers"
)

func TestHandleWBSList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "WBS List")
	testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil", 50, 80)
	testhelpers.CreateTestWBSItem(t, app, project.Id, 2, "2", "MEP", 50, 20)

	req := httptest.NewRequest(http.MethodGet, "/api/app/projects/"+project.Id+"/wbs", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out wbsListJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(out.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(out.Items))
	}
	if math.Abs(out.Overall-50) > 1e-9 {
		t.Errorf("overall = %v, want 50", out.Overall)
	}
}

func TestHandleWBSList_UnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/app/projects/missing/wbs", nil)
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()

	if err := HandleWBSList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleWBSAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "WBS Add")

	req := newFormRequest("/api/app/projects/"+project.Id+"/wbs", url.Values{})
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSAdd(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out wbsItemJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out.Item.ID == "" {
		t.Error("expected persisted item with an id")
	}
	if out.Item.Code != "" || out.Item.Weight != 0 {
		t.Errorf("expected blank item, got %+v", out.Item)
	}
}

func TestHandleWBSUpdateField_SanitizesInput(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "WBS Update")
	testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil", 50, 80)
	item := testhelpers.CreateTestWBSItem(t, app, project.Id, 2, "2", "MEP", 50, 0)

	form := url.Values{}
	form.Set("field", "progress")
	form.Set("value", "20%")

	req := newFormRequest("/api/app/projects/"+project.Id+"/wbs/"+item.Id, form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSUpdateField(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out wbsItemJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out.Item.Progress != 20 {
		t.Errorf("progress = %v, want sanitized 20", out.Item.Progress)
	}
	if math.Abs(out.Overall-50) > 1e-9 {
		t.Errorf("overall = %v, want recomputed 50", out.Overall)
	}

	// The project status synchronized as part of the same mutation.
	updated, _ := app.FindRecordById("projects", project.Id)
	if got := updated.GetInt("progress_percent"); got != 50 {
		t.Errorf("progress_percent = %d, want 50", got)
	}
}

func TestHandleWBSUpdateField_UnknownField(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "WBS Bad Field")
	item := testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil", 0, 0)

	form := url.Values{}
	form.Set("field", "sort_order")
	form.Set("value", "5")

	req := newFormRequest("/api/app/projects/"+project.Id+"/wbs/"+item.Id, form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSUpdateField(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleWBSUpdateField_ForeignProjectRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestProject(t, app, "Owner")
	other := testhelpers.CreateTestProject(t, app, "Other")
	item := testhelpers.CreateTestWBSItem(t, app, owner.Id, 1, "1", "Civil", 100, 40)

	form := url.Values{}
	form.Set("field", "progress")
	form.Set("value", "99")

	req := newFormRequest("/api/app/projects/"+other.Id+"/wbs/"+item.Id, form)
	req.SetPathValue("projectId", other.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSUpdateField(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for foreign item, got %d", rec.Code)
	}

	stored, _ := app.FindRecordById("wbs_items", item.Id)
	if got := stored.GetFloat("progress"); got != 40 {
		t.Errorf("progress = %v, want unchanged 40", got)
	}
}

func TestHandleWBSDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "WBS Delete")
	testhelpers.CreateTestWBSItem(t, app, project.Id, 1, "1", "Civil", 50, 80)
	item := testhelpers.CreateTestWBSItem(t, app, project.Id, 2, "2", "MEP", 50, 20)

	req := httptest.NewRequest(http.MethodDelete, "/api/app/projects/"+project.Id+"/wbs/"+item.Id, nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleWBSDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	// Only the 80% item remains.
	if math.Abs(out["overall"]-80) > 1e-9 {
		t.Errorf("overall = %v, want 80", out["overall"])
	}
}
