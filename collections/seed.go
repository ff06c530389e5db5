package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type wbsDef struct {
	sortOrder int
	code      string
	name      string
	weight    float64
	progress  float64
}

type projectDef struct {
	name       string
	projectNo  string
	clientName string
	status     string
	items      []wbsDef
}

var demoProject = projectDef{
	name:       "Warehouse Extension — Phase 2",
	projectNo:  "PRJ-2024-017",
	clientName: "Meridian Logistics",
	status:     "active",
	items: []wbsDef{
		{1, "1", "Civil Works", 40, 0},
		{2, "1.1", "Excavation & Foundation", 50, 100},
		{3, "1.2", "Structural Steel", 30, 0},
		{4, "1.2.1", "Column Erection", 60, 80},
		{5, "1.2.2", "Roof Trusses", 40, 30},
		{6, "1.3", "Concrete Slab", 20, 25},
		{7, "2", "Electrical", 35, 0},
		{8, "2.1", "Cable Trays & Conduits", 40, 80},
		{9, "2.2", "Panel Installation", 35, 30},
		{10, "2.3", "Lighting", 25, 0},
		{11, "3", "Finishing", 25, 10},
	},
}

// Seed creates a demo project with a three-level WBS so the dashboard is not
// empty on first run. Returns early if any project already exists.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(projectsCol, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	itemsCol, err := app.FindCollectionByNameOrId("wbs_items")
	if err != nil {
		return fmt.Errorf("seed: could not find wbs_items collection: %w", err)
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", demoProject.name)
	project.Set("project_no", demoProject.projectNo)
	project.Set("client_name", demoProject.clientName)
	project.Set("status", demoProject.status)

	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: could not save demo project: %w", err)
	}

	for _, def := range demoProject.items {
		item := core.NewRecord(itemsCol)
		item.Set("project", project.Id)
		item.Set("sort_order", def.sortOrder)
		item.Set("code", def.code)
		item.Set("name", def.name)
		item.Set("weight", def.weight)
		item.Set("progress", def.progress)

		if err := app.Save(item); err != nil {
			log.Printf("seed: could not save WBS item %q: %v", def.name, err)
		}
	}

	log.Printf("seed: created demo project %q (%s)\n", demoProject.name, project.Id)
	return nil
}
