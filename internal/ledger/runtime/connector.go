package runtime

import (
	"context"
	"errors"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
)

// Connector is a named source of inbound transactions: it owns its own
// blocking I/O and exposes transactions one at a time.
type Connector interface {
	// Recv returns the next transaction, or ErrConnectorClosed when the
	// source is exhausted. Implementations must be safe to call from a
	// single dedicated goroutine only.
	Recv(ctx context.Context) (domain.Transaction, error)
}

// ErrConnectorClosed is returned by Recv once a connector has no more
// transactions to offer.
var ErrConnectorClosed = errors.New("connector closed")
