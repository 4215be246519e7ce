package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestApply_Opened_CreatesAccountWithInitialDeposit(t *testing.T) {
	// Arrange
	event := Opened{TxID: 1, AccountID: 7, Transaction: Transaction{ClientID: 7, TxID: 1, Type: Deposit, Amount: amount("10.5")}}

	// Act
	account, err := Apply(nil, event)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.ID != 7 {
		t.Errorf("expected account id 7, got %d", account.ID)
	}
	if !account.Balance.Available.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("expected available 10.5, got %s", account.Balance.Available)
	}
	if !account.Balance.Held.IsZero() {
		t.Errorf("expected zero held, got %s", account.Balance.Held)
	}
	if _, ok := account.PendingTransactions[1]; !ok {
		t.Error("expected tx 1 to be tracked as pending")
	}
}

func TestApply_Opened_NegativeAmount_Fails(t *testing.T) {
	// Arrange
	event := Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("-1")}}

	// Act
	_, err := Apply(nil, event)

	// Assert
	var negErr NegativeTransactionError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected NegativeTransactionError, got %v", err)
	}
}

func TestApply_Opened_NoAmount_Fails(t *testing.T) {
	// Arrange
	event := Opened{TxID: 1, AccountID: 7, Transaction: Transaction{}}

	// Act
	_, err := Apply(nil, event)

	// Assert
	if !errors.Is(err, ErrNoMoneyDeposited) {
		t.Fatalf("expected ErrNoMoneyDeposited, got %v", err)
	}
}

func TestApply_Opened_Twice_Fails(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("1")}})

	// Act
	_, err := Apply(&account, Opened{TxID: 2, AccountID: 7, Transaction: Transaction{Amount: amount("1")}})

	// Assert
	if !errors.Is(err, ErrAlreadyOpened) {
		t.Fatalf("expected ErrAlreadyOpened, got %v", err)
	}
}

func TestApply_EventBeforeOpen_Fails(t *testing.T) {
	// Act
	_, err := Apply(nil, DepositRecorded{Amount: decimal.RequireFromString("1")})

	// Assert
	if !errors.Is(err, ErrNotOpenedYet) {
		t.Fatalf("expected ErrNotOpenedYet, got %v", err)
	}
}

func TestApply_Deposit_IncreasesAvailable(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("10")}})

	// Act
	account, err := Apply(&account, DepositRecorded{Amount: decimal.RequireFromString("5"), Transaction: Transaction{TxID: 2, Type: Deposit, Amount: amount("5")}})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Balance.Available.Equal(decimal.RequireFromString("15")) {
		t.Errorf("expected available 15, got %s", account.Balance.Available)
	}
}

func TestApply_Withdrawal_DecreasesAvailable(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("10")}})

	// Act
	account, err := Apply(&account, WithdrawalRecorded{Amount: decimal.RequireFromString("4"), Transaction: Transaction{TxID: 2, Type: Withdrawal, Amount: amount("4")}})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Balance.Available.Equal(decimal.RequireFromString("6")) {
		t.Errorf("expected available 6, got %s", account.Balance.Available)
	}
}

func TestApply_DisputeDeposit_MovesFundsToHeld(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{TxID: 1, Type: Deposit, Amount: amount("10")}})

	// Act
	account, err := Apply(&account, DisputeRecorded{TxID: 1, Amount: decimal.RequireFromString("10")})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Balance.Available.IsZero() {
		t.Errorf("expected available 0, got %s", account.Balance.Available)
	}
	if !account.Balance.Held.Equal(decimal.RequireFromString("10")) {
		t.Errorf("expected held 10, got %s", account.Balance.Held)
	}
	if account.PendingTransactions[1].Status != StatusDisputed {
		t.Errorf("expected tx 1 disputed, got %s", account.PendingTransactions[1].Status)
	}
}

func TestApply_DisputeWithdrawal_AlwaysIncrementsHeld_EvenWhenAvailableInsufficient(t *testing.T) {
	// Arrange: open with 10, withdraw 10 leaving available at 0, then
	// dispute the withdrawal. This exercises the preserved "bug": held
	// increments unconditionally, available only decrements when
	// sufficient.
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{TxID: 1, Type: Deposit, Amount: amount("10")}})
	account, _ = Apply(&account, WithdrawalRecorded{Amount: decimal.RequireFromString("10"), Transaction: Transaction{TxID: 2, Type: Withdrawal, Amount: amount("10")}})

	// Act
	account, err := Apply(&account, DisputeRecorded{TxID: 2, Amount: decimal.RequireFromString("10")})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Balance.Available.IsZero() {
		t.Errorf("expected available to stay 0 (insufficient to subtract), got %s", account.Balance.Available)
	}
	if !account.Balance.Held.Equal(decimal.RequireFromString("10")) {
		t.Errorf("expected held to increment to 10 regardless, got %s", account.Balance.Held)
	}
}

func TestApply_Resolve_ReturnsHeldFundsToAvailable(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{TxID: 1, Type: Deposit, Amount: amount("10")}})
	account, _ = Apply(&account, DisputeRecorded{TxID: 1, Amount: decimal.RequireFromString("10")})

	// Act
	account, err := Apply(&account, ResolveRecorded{TxID: 1, Amount: decimal.RequireFromString("10")})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Balance.Available.Equal(decimal.RequireFromString("10")) {
		t.Errorf("expected available 10, got %s", account.Balance.Available)
	}
	if !account.Balance.Held.IsZero() {
		t.Errorf("expected held 0, got %s", account.Balance.Held)
	}
}

func TestApply_Chargeback_LocksAccount(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{TxID: 1, Type: Deposit, Amount: amount("10")}})
	account, _ = Apply(&account, DisputeRecorded{TxID: 1, Amount: decimal.RequireFromString("10")})

	// Act
	account, err := Apply(&account, ChargebackRecorded{TxID: 1, Amount: decimal.RequireFromString("10")})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !account.Locked {
		t.Error("expected account to be locked")
	}
	if !account.Balance.Held.IsZero() {
		t.Errorf("expected held 0, got %s", account.Balance.Held)
	}
}

func TestApply_Chargeback_InsufficientHeld_Fails(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("10")}})

	// Act
	_, err := Apply(&account, ChargebackRecorded{TxID: 99, Amount: decimal.RequireFromString("10")})

	// Assert
	if !errors.Is(err, ErrInvalidTransactionChargeback) {
		t.Fatalf("expected ErrInvalidTransactionChargeback, got %v", err)
	}
}

func TestSnapshot_RoundsToFourDecimalPlacesHalfToEven(t *testing.T) {
	// Arrange
	account, _ := Apply(nil, Opened{TxID: 1, AccountID: 7, Transaction: Transaction{Amount: amount("1.00005")}})

	// Act
	snapshot := account.Snapshot()

	// Assert
	if snapshot.Available.StringFixed(4) != "1.0000" {
		t.Errorf("expected round-half-to-even to 1.0000, got %s", snapshot.Available.StringFixed(4))
	}
	if !snapshot.Total.Equal(snapshot.Available.Add(snapshot.Held)) {
		t.Errorf("expected total = available + held, got %s != %s + %s", snapshot.Total, snapshot.Available, snapshot.Held)
	}
}
