// Package handlers wires the project dashboard's HTTP routes: project CRUD,
// WBS line item editing, the snapshot archive and report exports.
package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// projectJSON is the wire shape of one project record.
type projectJSON struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ProjectNo       string  `json:"projectNo"`
	ClientName      string  `json:"clientName"`
	Status          string  `json:"status"`
	ProgressPercent float64 `json:"progressPercent"`
}

func projectFromRecord(rec *core.Record) projectJSON {
	return projectJSON{
		ID:              rec.Id,
		Name:            rec.GetString("name"),
		ProjectNo:       rec.GetString("project_no"),
		ClientName:      rec.GetString("client_name"),
		Status:          rec.GetString("status"),
		ProgressPercent: rec.GetFloat("progress_percent"),
	}
}

// HandleProjectList returns all projects, newest first.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(projectsCol, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project_list: query failed: %v", err)
			records = nil
		}

		out := make([]projectJSON, 0, len(records))
		for _, rec := range records {
			out = append(out, projectFromRecord(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleProjectCreate creates a project from form values. Name is the only
// required field.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := e.Request.FormValue("name")
		if name == "" {
			return e.String(http.StatusBadRequest, "Project name is required")
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		rec := core.NewRecord(projectsCol)
		rec.Set("name", name)
		rec.Set("project_no", e.Request.FormValue("project_no"))
		rec.Set("client_name", e.Request.FormValue("client_name"))
		status := e.Request.FormValue("status")
		if status == "" {
			status = "active"
		}
		rec.Set("status", status)

		if err := app.Save(rec); err != nil {
			log.Printf("project_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, projectFromRecord(rec))
	}
}

// HandleProjectEdit updates a project's descriptive fields from form values.
// Blank form values leave the stored field untouched; progress_percent is
// never writable here, it belongs to the WBS sync.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		rec, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		for _, field := range []string{"name", "project_no", "client_name", "status"} {
			if v := e.Request.FormValue(field); v != "" {
				rec.Set(field, v)
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("project_edit: save failed %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, projectFromRecord(rec))
	}
}

// HandleProjectDelete deletes a project. PocketBase cascade removes its WBS
// items and snapshots.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		rec, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_delete: not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("project_delete: delete failed %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
