package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/progress"
	"progresstracker/store"
)

// wbsListJSON is the wire shape of a project's full item list plus its
// computed overall, so the client never recomputes the rollup itself.
type wbsListJSON struct {
	Items   []progress.Item `json:"items"`
	Overall float64         `json:"overall"`
}

// wbsItemJSON is one mutated item echoed back with the recomputed overall.
type wbsItemJSON struct {
	Item    progress.Item `json:"item"`
	Overall float64       `json:"overall"`
}

// HandleWBSList returns the project's items in stored order with the overall.
func HandleWBSList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		wbs := store.NewWBS(app)
		items, err := wbs.Load(projectID)
		if err != nil {
			log.Printf("wbs_list: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, wbsListJSON{
			Items:   items,
			Overall: progress.Overall(items),
		})
	}
}

// HandleWBSAdd appends a blank line item to the project.
func HandleWBSAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		wbs := store.NewWBS(app)
		item, err := wbs.AddBlank(projectID)
		if err != nil {
			log.Printf("wbs_add: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, wbsItemJSON{
			Item:    item,
			Overall: wbs.Overall(projectID),
		})
	}
}

// HandleWBSUpdateField writes one field of one item from the raw form value.
// Numeric fields are sanitized and clamped rather than rejected, so this
// never fails on bad input; the response carries the value actually stored
// plus the recomputed overall.
func HandleWBSUpdateField(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")
		field := e.Request.FormValue("field")
		value := e.Request.FormValue("value")

		wbs := store.NewWBS(app)
		item, err := wbs.UpdateField(projectID, itemID, field, value)
		if err != nil {
			log.Printf("wbs_update: %v", err)
			return e.String(http.StatusBadRequest, "Could not update item")
		}

		return e.JSON(http.StatusOK, wbsItemJSON{
			Item:    item,
			Overall: wbs.Overall(projectID),
		})
	}
}

// HandleWBSDelete removes a line item and returns the recomputed overall.
func HandleWBSDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")

		wbs := store.NewWBS(app)
		if err := wbs.Remove(projectID, itemID); err != nil {
			log.Printf("wbs_delete: %v", err)
			return e.String(http.StatusNotFound, "Item not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"overall": wbs.Overall(projectID),
		})
	}
}
