// Package core implements a type-parameterized event-sourcing kernel:
// append-only streams, optimistic concurrency, and aggregate rehydration
// via a pure apply function, generalized over aggregate ID and event type.
package core

// Message is anything that can identify itself by name. Both commands and
// events implement it, without committing to a concrete event representation.
type Message interface {
	MessageName() string
}

// Envelope pairs a message with the version it produced or was recorded at
// and the store-assigned EventID it was persisted under, if any.
type Envelope[T Message] struct {
	Version int
	EventID string
	Event   T
}

// ApplyFunc folds a single event onto a state value, returning the next
// state. A nil *T input means "no aggregate exists yet", distinguishing a
// fresh aggregate from one rehydrated from a non-empty stream. Apply must
// be pure: no I/O, no mutation of the event, deterministic given the same
// inputs.
type ApplyFunc[T any, Evt Message] func(state *T, event Evt) (T, error)

// Aggregate names the state type and supplies its apply function. Root and
// Repository do not require it: they take an ApplyFunc directly.
type Aggregate[T any, Evt Message] interface {
	Apply(state *T, event Evt) (T, error)
}

// Root tracks a live aggregate instance: its current state, version, and
// the events recorded since it was loaded but not yet saved.
type Root[ID comparable, T any, Evt Message] struct {
	id          ID
	version     int
	state       T
	hasState    bool
	uncommitted []Evt
	apply       ApplyFunc[T, Evt]
}

// NewRoot constructs an empty root ready to record its first event.
func NewRoot[ID comparable, T any, Evt Message](id ID, apply ApplyFunc[T, Evt]) *Root[ID, T, Evt] {
	return &Root[ID, T, Evt]{id: id, apply: apply}
}

// ID returns the aggregate's stream identity.
func (r *Root[ID, T, Evt]) ID() ID { return r.id }

// Version returns the last version recorded or rehydrated, 0 for a fresh root.
func (r *Root[ID, T, Evt]) Version() int { return r.version }

// State returns the current folded state and whether any event has been applied.
func (r *Root[ID, T, Evt]) State() (T, bool) { return r.state, r.hasState }

// UncommittedEvents returns events recorded since construction or rehydration,
// in the order they were recorded.
func (r *Root[ID, T, Evt]) UncommittedEvents() []Evt {
	return r.uncommitted
}

// ClearUncommitted drops the uncommitted buffer after a successful save.
func (r *Root[ID, T, Evt]) ClearUncommitted() {
	r.uncommitted = nil
}

// RecordNew applies event as the first event of a brand new stream: version
// becomes 1. Returns the apply error unmodified so callers can map it onto
// domain-specific error types.
func (r *Root[ID, T, Evt]) RecordNew(event Evt) error {
	next, err := r.apply(nil, event)
	if err != nil {
		return err
	}
	r.state = next
	r.hasState = true
	r.version = 1
	r.uncommitted = append(r.uncommitted, event)
	return nil
}

// RecordThat applies event onto the current state and advances the version
// by one, appending it to the uncommitted buffer.
func (r *Root[ID, T, Evt]) RecordThat(event Evt) error {
	var statePtr *T
	if r.hasState {
		statePtr = &r.state
	}
	next, err := r.apply(statePtr, event)
	if err != nil {
		return err
	}
	r.state = next
	r.hasState = true
	r.version++
	r.uncommitted = append(r.uncommitted, event)
	return nil
}

// Rehydrate folds a historical event stream onto a fresh root in order,
// without touching the uncommitted buffer. It returns the reconstructed
// root, or (nil, nil) if history was empty (no aggregate exists).
func Rehydrate[ID comparable, T any, Evt Message](id ID, apply ApplyFunc[T, Evt], history []Envelope[Evt]) (*Root[ID, T, Evt], error) {
	if len(history) == 0 {
		return nil, nil
	}
	root := NewRoot(id, apply)
	for _, envelope := range history {
		var statePtr *T
		if root.hasState {
			statePtr = &root.state
		}
		next, err := apply(statePtr, envelope.Event)
		if err != nil {
			return nil, err
		}
		root.state = next
		root.hasState = true
		root.version = envelope.Version
	}
	return root, nil
}
