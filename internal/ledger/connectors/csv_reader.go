// Package connectors implements the CSV input connector and the CSV
// snapshot writer for the external interfaces: flexible-column,
// whitespace-trimmed delimited records in, one row per client out.
package connectors

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/ledgerflow/payments-engine/internal/ledger/runtime"
	"github.com/ledgerflow/payments-engine/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// CSVConnector decodes a header-led CSV stream of inbound transactions on
// its own goroutine, so the blocking csv.Reader.Read call never stalls the
// runtime's cooperative scheduler.
type CSVConnector struct {
	out    chan decoded
	done   chan struct{}
	logger logging.Logger
}

type decoded struct {
	tx  domain.Transaction
	err error
}

// NewCSVConnector starts decoding r in the background and returns a
// connector ready to be registered with the runtime. Malformed rows are
// logged through logger and skipped.
func NewCSVConnector(r io.Reader, logger logging.Logger) *CSVConnector {
	c := &CSVConnector{
		out:    make(chan decoded),
		done:   make(chan struct{}),
		logger: logger,
	}
	go c.decode(r)
	return c
}

func (c *CSVConnector) decode(r io.Reader) {
	defer close(c.out)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err != io.EOF {
			select {
			case c.out <- decoded{err: err}:
			case <-c.done:
			}
		}
		return
	}
	columns := indexColumns(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			// A malformed CSV line is a bad record, not a connector
			// failure: skip it and keep reading rather than tearing
			// down the whole connector over one bad row.
			c.logger.Warn("skipping malformed csv row", "error", err)
			continue
		}

		tx, err := parseRecord(record, columns)
		if err != nil {
			c.logger.Warn("skipping unparseable transaction row", "error", err)
			continue
		}
		select {
		case c.out <- decoded{tx: tx}:
		case <-c.done:
			return
		}
	}
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return idx
}

func field(record []string, columns map[string]int, name string) (string, bool) {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func parseRecord(record []string, columns map[string]int) (domain.Transaction, error) {
	typeStr, ok := field(record, columns, "type")
	if !ok {
		return domain.Transaction{}, fmt.Errorf("missing type column")
	}

	clientStr, _ := field(record, columns, "client")
	client, err := strconv.ParseUint(clientStr, 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid client id %q: %w", clientStr, err)
	}

	txStr, _ := field(record, columns, "tx")
	txID, err := strconv.ParseUint(txStr, 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid tx id %q: %w", txStr, err)
	}

	tx := domain.Transaction{
		ClientID: uint16(client),
		TxID:     uint32(txID),
		Type:     domain.TransactionType(strings.ToLower(typeStr)),
	}

	if amountStr, ok := field(record, columns, "amount"); ok && amountStr != "" {
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
		}
		tx.Amount = &amount
	}

	return tx, nil
}

// Recv implements runtime.Connector.
func (c *CSVConnector) Recv(ctx context.Context) (domain.Transaction, error) {
	select {
	case d, open := <-c.out:
		if !open {
			return domain.Transaction{}, runtime.ErrConnectorClosed
		}
		return d.tx, d.err
	case <-ctx.Done():
		return domain.Transaction{}, ctx.Err()
	}
}
