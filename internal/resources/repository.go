package resources

import "context"

// Repository is the storage contract the importer depends on.
type Repository interface {
	// FindRecord returns the first resource matching alias under parentID
	// with templateID, or a *NotFoundError.
	FindRecord(ctx context.Context, alias string, parentID, templateID int64) (*Resource, error)
	// FindParent returns the resource identified by id, or a *NotFoundError.
	FindParent(ctx context.Context, id int64) (*Resource, error)
	// NewRecord returns an empty, unsaved resource.
	NewRecord() *Resource
	// Save inserts record when it is new and updates it in place otherwise.
	// On insert the assigned ID is written back to record.
	Save(ctx context.Context, record *Resource) error
}
