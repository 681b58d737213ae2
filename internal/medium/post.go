package medium

import "time"

// ParsedPost is the content extracted from one post file.
type ParsedPost struct {
	Alias      string
	Title      string
	Summary    string
	BodyHTML   string
	SourcePath string
	// PublishedAt is the zero time when the post carries no usable timestamp.
	PublishedAt time.Time
}

// PublishedOn returns the publish time in Unix seconds, or 0 when the post has
// no timestamp or it does not resolve to a positive value.
func (p ParsedPost) PublishedOn() int64 {
	if p.PublishedAt.IsZero() {
		return 0
	}
	if ts := p.PublishedAt.Unix(); ts > 0 {
		return ts
	}
	return 0
}

// Target is where a run places its records. It does not change during a run.
type Target struct {
	ParentID   int64
	TemplateID int64
	Overwrite  bool
	// ContextKey is copied from the parent resource.
	ContextKey string
	AuthorID   int64
}
