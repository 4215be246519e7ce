package core

import "fmt"

// ConflictError reports an optimistic concurrency failure: the caller
// expected the stream to be at version Expected but it was Actual.
type ConflictError[ID comparable] struct {
	StreamID ID
	Expected int
	Actual   int
}

func (e ConflictError[ID]) Error() string {
	return fmt.Sprintf("concurrency conflict for stream %v: expected version %d, got %d", e.StreamID, e.Expected, e.Actual)
}

// Check selects the optimistic-concurrency precondition for Append.
type Check struct {
	mustBe  bool
	version int
}

// Any accepts the append unconditionally.
func Any() Check { return Check{} }

// MustBe succeeds only if the stream's current version equals v.
func MustBe(v int) Check { return Check{mustBe: true, version: v} }

// VersionSelect chooses which portion of a stream Stream returns.
type VersionSelect struct {
	from int
}

// All selects the entire stream.
func All() VersionSelect { return VersionSelect{} }

// From selects versions >= v.
func From(v int) VersionSelect { return VersionSelect{from: v} }

// Persisted is a single stored event together with its stream identity and
// the version it occupies, matching the shape of the documented event log
// record. EventID is an opaque, store-assigned identifier for this
// particular envelope, distinct from the stream identity and version;
// nothing in the domain model depends on it.
type Persisted[ID comparable, Evt Message] struct {
	StreamID ID
	Version  int
	EventID  string
	Event    Evt
}

// Store is an append-only, per-stream event log with optimistic concurrency.
// Implementations must be safe for concurrent use.
type Store[ID comparable, Evt Message] interface {
	// Append adds events to streamID's log. If check is MustBe(v) and the
	// stream's current version is not v, it returns a ConflictError[ID]
	// and appends nothing. On success it returns the stream's new version.
	Append(streamID ID, check Check, events []Evt) (int, error)

	// Stream returns the events selected by sel for streamID, oldest first.
	// Returns an empty slice for an unknown stream.
	Stream(streamID ID, sel VersionSelect) ([]Persisted[ID, Evt], error)

	// StreamIDs returns every stream identity that holds at least one event.
	StreamIDs() []ID
}
