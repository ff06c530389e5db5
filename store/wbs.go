// Package store persists WBS line items and progress snapshots in PocketBase
// collections and keeps the owning project's status percentage in sync.
package store

import (
	"fmt"
	"log"
	"math"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/progress"
)

// PersistErrorPolicy controls what a WBS store does when a read or write
// against the backing collection fails.
type PersistErrorPolicy int

const (
	// PersistErrorIgnore logs the failure and degrades to an empty/unsaved
	// state. The in-memory list stays authoritative for the session.
	PersistErrorIgnore PersistErrorPolicy = iota
	// PersistErrorSurface returns the failure to the caller.
	PersistErrorSurface
)

// WBS is the flat per-project line item store. Every mutation that touches a
// weight or progress value recomputes the project-wide overall progress and
// pushes the rounded percentage to the project record.
type WBS struct {
	app            *pocketbase.PocketBase
	OnPersistError PersistErrorPolicy
}

// NewWBS returns a WBS store with the default ignore-on-persist-error policy.
func NewWBS(app *pocketbase.PocketBase) *WBS {
	return &WBS{app: app}
}

// Load returns the project's items in stored order. Numeric fields are
// re-clamped on read in case the database was edited externally.
func (s *WBS) Load(projectID string) ([]progress.Item, error) {
	records, err := s.app.FindRecordsByFilter(
		"wbs_items",
		"project = {:projectId}",
		"sort_order",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		if s.OnPersistError == PersistErrorSurface {
			return nil, fmt.Errorf("wbs load: %w", err)
		}
		log.Printf("wbs: could not load items for project %s: %v", projectID, err)
		return nil, nil
	}

	items := make([]progress.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, itemFromRecord(rec))
	}
	return items, nil
}

// Save replaces the project's full item list and re-synchronizes the project
// status. Item order becomes the stored order.
func (s *WBS) Save(projectID string, items []progress.Item) error {
	itemsCol, err := s.app.FindCollectionByNameOrId("wbs_items")
	if err != nil {
		return fmt.Errorf("wbs save: %w", err)
	}

	existing, err := s.app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "", 0, 0,
		map[string]any{"projectId": projectID})
	if err == nil {
		for _, rec := range existing {
			if err := s.app.Delete(rec); err != nil {
				log.Printf("wbs: could not delete item %s during save: %v", rec.Id, err)
			}
		}
	}

	for i, it := range items {
		rec := core.NewRecord(itemsCol)
		rec.Set("project", projectID)
		rec.Set("sort_order", i+1)
		rec.Set("code", it.Code)
		rec.Set("name", it.Name)
		rec.Set("weight", progress.Clamp(it.Weight))
		rec.Set("progress", progress.Clamp(it.Progress))

		if err := s.app.Save(rec); err != nil {
			if s.OnPersistError == PersistErrorSurface {
				return fmt.Errorf("wbs save: item %d: %w", i, err)
			}
			log.Printf("wbs: could not save item %d for project %s: %v", i, projectID, err)
		}
	}

	s.SyncProjectStatus(projectID)
	return nil
}

// AddBlank appends an empty line item and returns it. A blank item has no
// code, no name and zero weight/progress, so it does not change the overall.
func (s *WBS) AddBlank(projectID string) (progress.Item, error) {
	itemsCol, err := s.app.FindCollectionByNameOrId("wbs_items")
	if err != nil {
		return progress.Item{}, fmt.Errorf("wbs add: %w", err)
	}

	existing, _ := s.app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0,
		map[string]any{"projectId": projectID})

	rec := core.NewRecord(itemsCol)
	rec.Set("project", projectID)
	rec.Set("sort_order", len(existing)+1)
	rec.Set("code", "")
	rec.Set("name", "")
	rec.Set("weight", 0)
	rec.Set("progress", 0)

	if err := s.app.Save(rec); err != nil {
		return progress.Item{}, fmt.Errorf("wbs add: %w", err)
	}
	return itemFromRecord(rec), nil
}

// UpdateField writes a single field from raw user input. Weight and progress
// go through free-text sanitization and clamping; code and name are stored
// as-is. Numeric mutations trigger a project status sync after persisting.
func (s *WBS) UpdateField(projectID, itemID, field, raw string) (progress.Item, error) {
	rec, err := s.app.FindRecordById("wbs_items", itemID)
	if err != nil {
		return progress.Item{}, fmt.Errorf("wbs update: item not found: %w", err)
	}
	if rec.GetString("project") != projectID {
		return progress.Item{}, fmt.Errorf("wbs update: item %s does not belong to project %s", itemID, projectID)
	}

	numeric := false
	switch field {
	case "code", "name":
		rec.Set(field, raw)
	case "weight", "progress":
		rec.Set(field, progress.SanitizeNumber(raw))
		numeric = true
	default:
		return progress.Item{}, fmt.Errorf("wbs update: unknown field %q", field)
	}

	if err := s.app.Save(rec); err != nil {
		return progress.Item{}, fmt.Errorf("wbs update: %w", err)
	}

	if numeric {
		s.SyncProjectStatus(projectID)
	}
	return itemFromRecord(rec), nil
}

// Remove deletes a single item and re-synchronizes the project status
// (a removed weight changes the rollup).
func (s *WBS) Remove(projectID, itemID string) error {
	rec, err := s.app.FindRecordById("wbs_items", itemID)
	if err != nil {
		return fmt.Errorf("wbs remove: item not found: %w", err)
	}
	if rec.GetString("project") != projectID {
		return fmt.Errorf("wbs remove: item %s does not belong to project %s", itemID, projectID)
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("wbs remove: %w", err)
	}

	s.SyncProjectStatus(projectID)
	return nil
}

// Overall recomputes the project-wide progress from the current list.
func (s *WBS) Overall(projectID string) float64 {
	items, _ := s.Load(projectID)
	return progress.Overall(items)
}

// SyncProjectStatus writes round(overall) into the project's progress_percent
// field. Fire-and-forget: the WBS list is the source of truth and the project
// field a cached denormalization, so failures are logged, never rolled back.
func (s *WBS) SyncProjectStatus(projectID string) {
	overall := s.Overall(projectID)

	project, err := s.app.FindRecordById("projects", projectID)
	if err != nil {
		log.Printf("wbs: status sync: project %s not found: %v", projectID, err)
		return
	}

	project.Set("progress_percent", int(math.Round(overall)))
	if err := s.app.Save(project); err != nil {
		log.Printf("wbs: status sync: could not update project %s: %v", projectID, err)
	}
}

func itemFromRecord(rec *core.Record) progress.Item {
	return progress.Item{
		ID:       rec.Id,
		Code:     rec.GetString("code"),
		Name:     rec.GetString("name"),
		Weight:   progress.Clamp(rec.GetFloat("weight")),
		Progress: progress.Clamp(rec.GetFloat("progress")),
	}
}
