package domain

import "github.com/shopspring/decimal"

// TransactionEvent is implemented by every fact the Account aggregate can
// record. Go has no sum types, so each variant gets its own struct;
// MessageName distinguishes them by name for logging and dispatch.
type TransactionEvent interface {
	MessageName() string
}

// Opened records that a new account started with an initial deposit.
type Opened struct {
	TxID        uint32
	AccountID   uint16
	Transaction Transaction
}

func (Opened) MessageName() string { return "Opened" }

// DepositRecorded records a successful deposit against an existing account.
type DepositRecorded struct {
	Amount      decimal.Decimal
	Transaction Transaction
}

func (DepositRecorded) MessageName() string { return "Deposit" }

// WithdrawalRecorded records a successful withdrawal against an existing account.
type WithdrawalRecorded struct {
	Amount      decimal.Decimal
	Transaction Transaction
}

func (WithdrawalRecorded) MessageName() string { return "Withdrawal" }

// DisputeRecorded records that a prior transaction has been disputed.
type DisputeRecorded struct {
	TxID   uint32
	Amount decimal.Decimal
}

func (DisputeRecorded) MessageName() string { return "Dispute" }

// ResolveRecorded records that a dispute has been resolved in the client's favor.
type ResolveRecorded struct {
	TxID   uint32
	Amount decimal.Decimal
}

func (ResolveRecorded) MessageName() string { return "Resolve" }

// ChargebackRecorded records that a dispute has resulted in a chargeback,
// which locks the account.
type ChargebackRecorded struct {
	TxID   uint32
	Amount decimal.Decimal
}

func (ChargebackRecorded) MessageName() string { return "Chargeback" }
