package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/collections"
	"progresstracker/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateClampWBSValues(app); err != nil {
			log.Printf("Warning: WBS clamp migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/app/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/app/projects", handlers.HandleProjectCreate(app))
		se.Router.PATCH("/api/app/projects/{projectId}", handlers.HandleProjectEdit(app))
		se.Router.DELETE("/api/app/projects/{projectId}", handlers.HandleProjectDelete(app))

		// ── WBS line items ───────────────────────────────────────
		se.Router.GET("/api/app/projects/{projectId}/wbs", handlers.HandleWBSList(app))
		se.Router.POST("/api/app/projects/{projectId}/wbs", handlers.HandleWBSAdd(app))
		se.Router.PATCH("/api/app/projects/{projectId}/wbs/{itemId}", handlers.HandleWBSUpdateField(app))
		se.Router.DELETE("/api/app/projects/{projectId}/wbs/{itemId}", handlers.HandleWBSDelete(app))

		// ── Snapshot archive ─────────────────────────────────────
		se.Router.GET("/api/app/projects/{projectId}/snapshots", handlers.HandleSnapshotList(app))
		se.Router.POST("/api/app/projects/{projectId}/snapshots", handlers.HandleSnapshotCreate(app))
		se.Router.POST("/api/app/projects/{projectId}/snapshots/{index}/amend", handlers.HandleSnapshotAmend(app))
		se.Router.POST("/api/app/projects/{projectId}/snapshots/{index}/restore", handlers.HandleSnapshotRestore(app))

		// ── Report export ────────────────────────────────────────
		se.Router.POST("/api/app/projects/{projectId}/export/pdf", handlers.HandleExportPDF(app))
		se.Router.POST("/api/app/projects/{projectId}/export/excel", handlers.HandleExportExcel(app))

		// Redirect home to the PocketBase dashboard
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/_/")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
