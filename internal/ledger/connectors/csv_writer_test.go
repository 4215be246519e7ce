package connectors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/shopspring/decimal"
)

func TestWriteSnapshots_FormatsFourDecimalPlaces(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	snapshots := []domain.Snapshot{
		{ClientID: 1, Available: decimal.RequireFromString("1.5"), Held: decimal.Zero, Total: decimal.RequireFromString("1.5"), Locked: false},
	}

	// Act
	err := WriteSnapshots(&buf, snapshots)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "client,available,held,total,locked" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,1.5000,0.0000,1.5000,false" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}
