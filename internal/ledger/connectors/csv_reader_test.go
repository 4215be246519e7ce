package connectors

import (
	"context"
	"strings"
	"testing"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/ledgerflow/payments-engine/internal/ledger/runtime"
	"github.com/ledgerflow/payments-engine/internal/platform/logging"
)

func drain(t *testing.T, c *CSVConnector) []domain.Transaction {
	t.Helper()
	var txs []domain.Transaction
	for {
		tx, err := c.Recv(context.Background())
		if err != nil {
			if err == runtime.ErrConnectorClosed {
				return txs
			}
			t.Fatalf("unexpected recv error: %v", err)
		}
		txs = append(txs, tx)
	}
}

func TestCSVConnector_ParsesDepositsAndWithdrawals(t *testing.T) {
	// Arrange
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"withdrawal, 1, 2, 0.5\n"
	connector := NewCSVConnector(strings.NewReader(input), logging.NoOp{})

	// Act
	txs := drain(t, connector)

	// Assert
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Type != domain.Deposit || txs[0].ClientID != 1 || txs[0].TxID != 1 {
		t.Errorf("unexpected first transaction: %+v", txs[0])
	}
	if txs[0].Amount == nil || txs[0].Amount.String() != "1" {
		t.Errorf("expected amount 1, got %v", txs[0].Amount)
	}
	if txs[1].Type != domain.Withdrawal {
		t.Errorf("expected withdrawal, got %s", txs[1].Type)
	}
}

func TestCSVConnector_DisputeRowsHaveNoAmount(t *testing.T) {
	// Arrange
	input := "type,client,tx,amount\ndispute,1,1,\n"
	connector := NewCSVConnector(strings.NewReader(input), logging.NoOp{})

	// Act
	txs := drain(t, connector)

	// Assert
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Amount != nil {
		t.Errorf("expected nil amount for dispute, got %v", txs[0].Amount)
	}
}

func TestCSVConnector_SkipsMalformedRows(t *testing.T) {
	// Arrange
	input := "type,client,tx,amount\n" +
		"deposit,notanumber,1,1.0\n" +
		"deposit,1,2,2.0\n"
	connector := NewCSVConnector(strings.NewReader(input), logging.NoOp{})

	// Act
	txs := drain(t, connector)

	// Assert
	if len(txs) != 1 {
		t.Fatalf("expected malformed row to be skipped, got %d transactions", len(txs))
	}
	if txs[0].TxID != 2 {
		t.Errorf("expected the surviving row to be tx 2, got %d", txs[0].TxID)
	}
}
