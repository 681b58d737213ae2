package resources

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resources: resource not found")
	ErrResourceRequired = errors.New("resources: resource is required")
	ErrDatabaseRequired = errors.New("resources: database not configured")
)

// NotFoundError reports a missing resource. It matches ErrNotFound with
// errors.Is.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err signals a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func recordKey(alias string, parentID, templateID int64) string {
	return fmt.Sprintf("alias=%s parent=%d template=%d", alias, parentID, templateID)
}

func idKey(id int64) string {
	return fmt.Sprintf("id=%d", id)
}
