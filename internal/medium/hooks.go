package medium

import (
	"context"
	"sync"

	"github.com/goliatone/go-cms-medium/internal/resources"
)

// BeforeSaveFunc runs after a record is mapped and before it is saved. Any
// non-nil error vetoes the save; ErrSaveRejected is the conventional value.
type BeforeSaveFunc func(ctx context.Context, record *resources.Resource, sourcePath string) error

// AfterSaveFunc runs after a record is saved. Its error is logged and does
// not change the outcome.
type AfterSaveFunc func(ctx context.Context, record *resources.Resource, sourcePath string) error

// Hooks holds the two callback slots of an importer. Each slot accepts one
// function.
type Hooks struct {
	mu         sync.RWMutex
	beforeSave BeforeSaveFunc
	afterSave  AfterSaveFunc
}

// RegisterBeforeSave fills the before-save slot.
func (h *Hooks) RegisterBeforeSave(fn BeforeSaveFunc) error {
	if fn == nil {
		return ErrHookRequired
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.beforeSave != nil {
		return ErrHookAlreadyRegistered
	}
	h.beforeSave = fn
	return nil
}

// RegisterAfterSave fills the after-save slot.
func (h *Hooks) RegisterAfterSave(fn AfterSaveFunc) error {
	if fn == nil {
		return ErrHookRequired
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.afterSave != nil {
		return ErrHookAlreadyRegistered
	}
	h.afterSave = fn
	return nil
}

func (h *Hooks) runBeforeSave(ctx context.Context, record *resources.Resource, sourcePath string) error {
	h.mu.RLock()
	fn := h.beforeSave
	h.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, record, sourcePath)
}

func (h *Hooks) runAfterSave(ctx context.Context, record *resources.Resource, sourcePath string) error {
	h.mu.RLock()
	fn := h.afterSave
	h.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, record, sourcePath)
}
