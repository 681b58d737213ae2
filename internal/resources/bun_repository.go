package resources

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// BunRepository stores resources through bun.
type BunRepository struct {
	db bun.IDB
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository returns a repository bound to db, which may be a *bun.DB
// or a bun.Tx.
func NewBunRepository(db bun.IDB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) FindRecord(ctx context.Context, alias string, parentID, templateID int64) (*Resource, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}

	record := new(Resource)
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.alias = ?", alias).
		Where("?TableAlias.parent = ?", parentID).
		Where("?TableAlias.template = ?", templateID).
		OrderExpr("?TableAlias.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, recordKey(alias, parentID, templateID))
	}
	return record, nil
}

func (r *BunRepository) FindParent(ctx context.Context, id int64) (*Resource, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}

	record := &Resource{ID: id}
	if err := r.db.NewSelect().Model(record).WherePK().Scan(ctx); err != nil {
		return nil, mapError(err, idKey(id))
	}
	return record, nil
}

func (r *BunRepository) NewRecord() *Resource {
	return &Resource{}
}

func (r *BunRepository) Save(ctx context.Context, record *Resource) error {
	if record == nil {
		return ErrResourceRequired
	}
	if r.db == nil {
		return ErrDatabaseRequired
	}

	if record.IsNew() {
		if _, err := r.db.NewInsert().Model(record).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("insert resource %s: %w", record.Alias, err)
		}
		return nil
	}

	result, err := r.db.NewUpdate().
		Model(record).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update resource %d: %w", record.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update resource %d rows affected: %w", record.ID, err)
	}
	if affected == 0 {
		return &NotFoundError{Key: idKey(record.ID)}
	}
	return nil
}

// List returns every stored resource ordered by ID.
func (r *BunRepository) List(ctx context.Context) ([]*Resource, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}
	var records []*Resource
	if err := r.db.NewSelect().Model(&records).OrderExpr("?TableAlias.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return records, nil
}

func mapError(err error, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("resource repository %s: %w", key, err)
}
