package store

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"progresstracker/progress"
)

// maxSnapshots caps the per-project archive; the oldest entries beyond the
// cap are silently dropped.
const maxSnapshots = 100

// BlankPBNumber is stored when the user leaves the billing-cycle label empty.
const BlankPBNumber = "—"

// Snapshot is an immutable dated copy of a project's full WBS list plus its
// computed overall progress, one per progress-billing event.
type Snapshot struct {
	ID              string          `json:"id"`
	TakenAt         string          `json:"takenAt"`
	PBNumber        string          `json:"pbNumber"`
	Items           []progress.Item `json:"items"`
	OverallProgress float64         `json:"overallProgress"`
}

// Snapshots is the per-project snapshot archive, newest first.
type Snapshots struct {
	app *pocketbase.PocketBase
}

// NewSnapshots returns a snapshot archive backed by the given app.
func NewSnapshots(app *pocketbase.PocketBase) *Snapshots {
	return &Snapshots{app: app}
}

// List returns the project's snapshots, newest first. Numeric item fields are
// re-clamped on read in case the stored JSON was edited externally.
func (s *Snapshots) List(projectID string) ([]Snapshot, error) {
	records, err := s.listRecords(projectID)
	if err != nil {
		log.Printf("snapshots: could not list for project %s: %v", projectID, err)
		return nil, nil
	}

	out := make([]Snapshot, 0, len(records))
	for _, rec := range records {
		out = append(out, snapshotFromRecord(rec))
	}
	return out, nil
}

// Create archives a new snapshot and prunes the archive down to the cap.
// A blank billing label is stored as the em-dash sentinel.
func (s *Snapshots) Create(projectID, pbNumber string, items []progress.Item, overall float64) (Snapshot, error) {
	col, err := s.app.FindCollectionByNameOrId("progress_snapshots")
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshots create: %w", err)
	}

	if pbNumber == "" {
		pbNumber = BlankPBNumber
	}

	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("pb_number", pbNumber)
	rec.Set("items", progress.CopyItems(items))
	rec.Set("overall_progress", overall)

	if err := s.app.Save(rec); err != nil {
		return Snapshot{}, fmt.Errorf("snapshots create: %w", err)
	}

	s.prune(projectID)
	return snapshotFromRecord(rec), nil
}

// AmendAt replaces the snapshot at the given newest-first position with new
// items, overall progress and billing label, keeping the original capture
// date. Out-of-bounds indexes are a no-op. The position is resolved against
// the archive as it exists now; a caller holding an index captured before the
// archive changed shape overwrites whatever sits at that slot today.
func (s *Snapshots) AmendAt(projectID string, index int, pbNumber string, items []progress.Item, overall float64) error {
	records, err := s.listRecords(projectID)
	if err != nil {
		return fmt.Errorf("snapshots amend: %w", err)
	}
	if index < 0 || index >= len(records) {
		return nil
	}

	if pbNumber == "" {
		pbNumber = BlankPBNumber
	}

	// taken_at only autodates on create, so saving preserves the original.
	rec := records[index]
	rec.Set("pb_number", pbNumber)
	rec.Set("items", progress.CopyItems(items))
	rec.Set("overall_progress", overall)

	if err := s.app.Save(rec); err != nil {
		return fmt.Errorf("snapshots amend: %w", err)
	}
	return nil
}

// Restore replaces the live WBS list with a copy of the snapshot at the given
// position and re-synchronizes the project status to that point-in-time state.
// This is intentional rewind semantics, not a preview.
func (s *Snapshots) Restore(projectID string, index int, wbs *WBS) error {
	records, err := s.listRecords(projectID)
	if err != nil {
		return fmt.Errorf("snapshots restore: %w", err)
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("snapshots restore: no snapshot at position %d", index)
	}

	snap := snapshotFromRecord(records[index])
	return wbs.Save(projectID, progress.CopyItems(snap.Items))
}

func (s *Snapshots) listRecords(projectID string) ([]*core.Record, error) {
	return s.app.FindRecordsByFilter(
		"progress_snapshots",
		"project = {:projectId}",
		"-taken_at,id",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
}

// prune deletes the oldest snapshots beyond the cap.
func (s *Snapshots) prune(projectID string) {
	records, err := s.listRecords(projectID)
	if err != nil {
		log.Printf("snapshots: prune: could not list for project %s: %v", projectID, err)
		return
	}
	for _, rec := range records[min(len(records), maxSnapshots):] {
		if err := s.app.Delete(rec); err != nil {
			log.Printf("snapshots: prune: could not delete %s: %v", rec.Id, err)
		}
	}
}

func snapshotFromRecord(rec *core.Record) Snapshot {
	var items []progress.Item
	if err := rec.UnmarshalJSONField("items", &items); err != nil {
		log.Printf("snapshots: could not decode items for %s: %v", rec.Id, err)
	}
	for i := range items {
		items[i].Weight = progress.Clamp(items[i].Weight)
		items[i].Progress = progress.Clamp(items[i].Progress)
	}

	takenAt := rec.GetDateTime("taken_at")
	return Snapshot{
		ID:              rec.Id,
		TakenAt:         takenAt.String(),
		PBNumber:        rec.GetString("pb_number"),
		Items:           items,
		OverallProgress: rec.GetFloat("overall_progress"),
	}
}
