package core

import "errors"

// ErrNotFound is returned by Repository.Get when a stream has no events.
var ErrNotFound = errors.New("aggregate not found")

// Repository loads and saves a Root by its stream ID, folding stored events
// through apply on load and appending uncommitted events on save.
type Repository[ID comparable, T any, Evt Message] struct {
	store Store[ID, Evt]
	apply ApplyFunc[T, Evt]
}

// NewRepository builds a repository backed by store, using apply to
// rehydrate and mutate aggregates of type T.
func NewRepository[ID comparable, T any, Evt Message](store Store[ID, Evt], apply ApplyFunc[T, Evt]) *Repository[ID, T, Evt] {
	return &Repository[ID, T, Evt]{store: store, apply: apply}
}

// Get loads every event recorded for id and folds it into a Root. Returns
// ErrNotFound if the stream is empty.
func (r *Repository[ID, T, Evt]) Get(id ID) (*Root[ID, T, Evt], error) {
	persisted, err := r.store.Stream(id, All())
	if err != nil {
		return nil, err
	}
	if len(persisted) == 0 {
		return nil, ErrNotFound
	}
	history := make([]Envelope[Evt], len(persisted))
	for i, p := range persisted {
		history[i] = Envelope[Evt]{Version: p.Version, EventID: p.EventID, Event: p.Event}
	}
	return Rehydrate(id, r.apply, history)
}

// Save appends root's uncommitted events to the store under an optimistic
// concurrency check pinned to the version the root had before those events
// were recorded. A no-op if there is nothing uncommitted. The uncommitted
// buffer is drained before the append is attempted, not after: on a
// Conflict or other store failure the buffer is already empty, and the
// caller must not reuse root as if those events were still pending.
func (r *Repository[ID, T, Evt]) Save(root *Root[ID, T, Evt]) error {
	events := root.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	priorVersion := root.Version() - len(events)
	root.ClearUncommitted()
	if _, err := r.store.Append(root.id, MustBe(priorVersion), events); err != nil {
		return err
	}
	return nil
}
