package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"progresstracker/progress"
)

// MigrateClampWBSValues re-clamps weight/progress on all stored WBS items into
// the [0,100] range. Values can drift out of range when the database is edited
// outside the app (admin UI, direct SQL). Safe to call on every startup --
// records already in range are left untouched.
func MigrateClampWBSValues(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("wbs_items")
	if err != nil {
		return fmt.Errorf("migrate: could not find wbs_items collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(
		itemsCol,
		"weight < 0 || weight > 100 || progress < 0 || progress > 100",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query out-of-range WBS items: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	log.Printf("migrate: found %d WBS item(s) with out-of-range values -- clamping...\n", len(records))

	for _, rec := range records {
		rec.Set("weight", progress.Clamp(rec.GetFloat("weight")))
		rec.Set("progress", progress.Clamp(rec.GetFloat("progress")))
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to clamp WBS item %s: %v\n", rec.Id, err)
		}
	}

	log.Println("migrate: WBS value clamp migration complete.")
	return nil
}
