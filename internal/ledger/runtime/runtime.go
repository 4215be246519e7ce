// Package runtime hosts the ingestion pipeline: a bounded fan-in of named
// connectors feeding a single command-handling consumer, with a typestate
// lifecycle (Idle -> Dead) expressed as two distinct struct types.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/ledgerflow/payments-engine/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

// Handler is the subset of application.Service the runtime depends on.
type Handler interface {
	Handle(tx domain.Transaction) error
}

// channelCapacity bounds the fan-in channel between connectors and the consumer.
const channelCapacity = 8192

// Idle is a runtime that has not yet been run. Only Idle exposes
// WithConnector and Run; Dead exposes only AccountIDs. Modeling each
// lifecycle state as its own type means an already-run runtime has no
// Run method to call by mistake, rather than a flag checked at runtime.
type Idle struct {
	handler    Handler
	logger     logging.Logger
	connectors map[string]Connector
}

// New builds an Idle runtime dispatching to handler.
func New(handler Handler, logger logging.Logger) *Idle {
	return &Idle{
		handler:    handler,
		logger:     logger,
		connectors: make(map[string]Connector),
	}
}

// ErrDuplicateConnector is returned by WithConnector when name is already registered.
var ErrDuplicateConnector = errors.New("duplicate connector name")

// WithConnector registers a named connector, returning the same Idle
// runtime for chaining. Registering the same name twice is an error.
func (r *Idle) WithConnector(name string, connector Connector) (*Idle, error) {
	if _, exists := r.connectors[name]; exists {
		return r, fmt.Errorf("%w: %s", ErrDuplicateConnector, name)
	}
	r.connectors[name] = connector
	return r, nil
}

// Dead is the runtime after Run has completed: it carries the ascending,
// deduplicated set of client IDs seen across the whole run, the only state
// a caller needs afterward to generate a report.
type Dead struct {
	accountIDs map[uint16]struct{}
}

// AccountIDs returns every client ID observed during the run, in ascending
// order.
func (d *Dead) AccountIDs() []uint16 {
	ids := make([]uint16, 0, len(d.accountIDs))
	for id := range d.accountIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Run drains every registered connector concurrently into a single bounded
// channel, dispatching each transaction to the handler in arrival order on
// one consumer goroutine, and returns the resulting Dead runtime. Handler
// errors are logged and the consumer continues; connector errors stop only
// that connector's goroutine.
func (r *Idle) Run(ctx context.Context) (*Dead, error) {
	ch := make(chan domain.Transaction, channelCapacity)

	group, groupCtx := errgroup.WithContext(ctx)
	for name, connector := range r.connectors {
		name, connector := name, connector
		group.Go(func() error {
			for {
				tx, err := connector.Recv(groupCtx)
				if err != nil {
					if !errors.Is(err, io.EOF) && !errors.Is(err, ErrConnectorClosed) {
						r.logger.Error("connector failed", "connector", name, "error", err)
					}
					return nil
				}
				select {
				case ch <- tx:
				case <-groupCtx.Done():
					return groupCtx.Err()
				}
			}
		})
	}

	var drainErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		drainErr = group.Wait()
		close(ch)
	}()

	accountIDs := make(map[uint16]struct{})
	for tx := range ch {
		accountIDs[tx.ClientID] = struct{}{}
		if err := r.handler.Handle(tx); err != nil {
			r.logger.Warn("transaction rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "type", tx.Type, "error", err)
		}
	}
	wg.Wait()

	return &Dead{accountIDs: accountIDs}, drainErr
}
