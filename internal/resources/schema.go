package resources

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

const lookupIndex = "resources_alias_parent_template_idx"

// CreateSchema creates the resources table and its lookup index when they do
// not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if db == nil {
		return ErrDatabaseRequired
	}
	if _, err := db.NewCreateTable().Model((*Resource)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create resources table: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*Resource)(nil)).
		Index(lookupIndex).
		Column("alias", "parent", "template").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create resources lookup index: %w", err)
	}
	return nil
}
