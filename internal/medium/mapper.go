package medium

import (
	"time"

	"github.com/goliatone/go-cms-medium/internal/resources"
)

// MapRecord copies post and target onto dst. now is the run time and is used
// for both createdon and editedon. The record ID is left untouched.
func MapRecord(dst *resources.Resource, post ParsedPost, target Target, now time.Time) {
	if dst == nil {
		return
	}
	publishedOn := post.PublishedOn()
	stamp := now.Unix()

	dst.PageTitle = post.Title
	dst.LongTitle = post.Summary
	dst.Description = post.Summary
	dst.Content = post.BodyHTML
	dst.Published = publishedOn > 0
	dst.PublishedOn = publishedOn
	dst.CreatedOn = stamp
	dst.CreatedBy = target.AuthorID
	dst.EditedOn = stamp
	dst.Alias = post.Alias
	dst.Parent = target.ParentID
	dst.Template = target.TemplateID
	dst.ContextKey = target.ContextKey
}
