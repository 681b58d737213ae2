package resources

import "github.com/uptrace/bun"

// Resource is a page entity in the content tree. Timestamps are Unix seconds
// and a zero PublishedOn means the resource was never published.
type Resource struct {
	bun.BaseModel `bun:"table:resources,alias:r"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	PageTitle   string `bun:"pagetitle,notnull" json:"pagetitle"`
	LongTitle   string `bun:"longtitle,notnull" json:"longtitle"`
	Description string `bun:"description,notnull" json:"description"`
	Content     string `bun:"content,type:text,notnull" json:"content"`
	Published   bool   `bun:"published,notnull" json:"published"`
	PublishedOn int64  `bun:"publishedon,notnull" json:"publishedon"`
	CreatedOn   int64  `bun:"createdon,notnull" json:"createdon"`
	CreatedBy   int64  `bun:"createdby,notnull" json:"createdby"`
	EditedOn    int64  `bun:"editedon,notnull" json:"editedon"`
	Alias       string `bun:"alias,notnull" json:"alias"`
	Parent      int64  `bun:"parent,notnull" json:"parent"`
	Template    int64  `bun:"template,notnull" json:"template"`
	ContextKey  string `bun:"context_key,notnull" json:"context_key"`
}

// Clone returns a copy of r, or nil when r is nil.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	cloned := *r
	return &cloned
}

// IsNew reports whether r has not been persisted yet.
func (r *Resource) IsNew() bool {
	return r == nil || r.ID == 0
}
