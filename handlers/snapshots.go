package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/progress"
	"progresstracker/store"
)

// HandleSnapshotList returns the project's snapshot archive, newest first.
func HandleSnapshotList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		snaps, err := store.NewSnapshots(app).List(projectID)
		if err != nil {
			log.Printf("snapshot_list: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, snaps)
	}
}

// HandleSnapshotCreate archives the project's current item list under the
// given billing label.
func HandleSnapshotCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		items, err := store.NewWBS(app).Load(projectID)
		if err != nil {
			log.Printf("snapshot_create: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		snap, err := store.NewSnapshots(app).Create(
			projectID,
			e.Request.FormValue("pb_number"),
			items,
			progress.Overall(items),
		)
		if err != nil {
			log.Printf("snapshot_create: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, snap)
	}
}

// HandleSnapshotAmend overwrites the snapshot at the given newest-first
// position with the project's current item list, keeping the original capture
// date. Out-of-bounds positions are accepted and do nothing.
func HandleSnapshotAmend(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Invalid snapshot position")
		}

		items, err := store.NewWBS(app).Load(projectID)
		if err != nil {
			log.Printf("snapshot_amend: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		err = store.NewSnapshots(app).AmendAt(
			projectID,
			index,
			e.Request.FormValue("pb_number"),
			items,
			progress.Overall(items),
		)
		if err != nil {
			log.Printf("snapshot_amend: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.NoContent(http.StatusNoContent)
	}
}

// HandleSnapshotRestore replaces the live item list with the snapshot at the
// given position and rewinds the project status to match.
func HandleSnapshotRestore(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Invalid snapshot position")
		}

		wbs := store.NewWBS(app)
		if err := store.NewSnapshots(app).Restore(projectID, index, wbs); err != nil {
			log.Printf("snapshot_restore: %v", err)
			return e.String(http.StatusNotFound, "Snapshot not found")
		}

		items, _ := wbs.Load(projectID)
		return e.JSON(http.StatusOK, wbsListJSON{
			Items:   items,
			Overall: progress.Overall(items),
		})
	}
}
