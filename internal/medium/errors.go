package medium

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound        = errors.New("medium importer: export source not found")
	ErrPostsFolderNotFound   = errors.New("medium importer: posts folder not found")
	ErrNoPostsFound          = errors.New("medium importer: no posts found")
	ErrParentNotFound        = errors.New("medium importer: parent resource not found")
	ErrMalformedPost         = errors.New("medium importer: malformed post")
	ErrRepositoryRequired    = errors.New("medium importer: repository is required")
	ErrSaveRejected          = errors.New("medium importer: save rejected")
	ErrHookRequired          = errors.New("medium importer: hook function is required")
	ErrHookAlreadyRegistered = errors.New("medium importer: hook already registered")
)

// MalformedPostError reports a post whose document lacks a required element.
// It matches ErrMalformedPost with errors.Is.
type MalformedPostError struct {
	Path  string
	Field string
	Err   error
}

func (e *MalformedPostError) Error() string {
	if e == nil {
		return ErrMalformedPost.Error()
	}
	msg := ErrMalformedPost.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: missing %s", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedPostError) Unwrap() []error {
	if e == nil || e.Err == nil {
		return []error{ErrMalformedPost}
	}
	return []error{ErrMalformedPost, e.Err}
}
