package domain

import "github.com/shopspring/decimal"

// TransactionType names the five inbound record kinds. Grounded in the
// original transaction type enum: deposit and withdrawal move money;
// dispute, resolve, and chargeback reference a transaction that already
// happened.
type TransactionType string

const (
	Deposit     TransactionType = "deposit"
	Withdrawal  TransactionType = "withdrawal"
	Dispute     TransactionType = "dispute"
	Resolve     TransactionType = "resolve"
	Chargeback  TransactionType = "chargeback"
)

// TransactionStatus tracks the lifecycle of a deposit or withdrawal once it
// has been opened. Dispute/resolve/chargeback records do not carry their own
// status; they move the status of the transaction they reference.
type TransactionStatus string

const (
	StatusOK         TransactionStatus = "ok"
	StatusDisputed   TransactionStatus = "disputed"
	StatusResolved   TransactionStatus = "resolved"
	StatusChargedBack TransactionStatus = "charged_back"
	StatusDeclined   TransactionStatus = "declined"
)

// Transaction is an inbound ledger record: a deposit/withdrawal with an
// amount, or a dispute/resolve/chargeback referencing one by TxID. Amount is
// nil for the three reference-only kinds.
type Transaction struct {
	Status  TransactionStatus
	ClientID uint16
	TxID    uint32
	Type    TransactionType
	Amount  *decimal.Decimal
}

// MessageName satisfies core.Message so a Transaction can be handed to the
// runtime and service exactly as any other command.
func (Transaction) MessageName() string { return "InboundTransaction" }

// CanBeDisputed reports whether this transaction is eligible to move into
// Disputed status: it must still be open (StatusOK) and be a deposit or
// withdrawal, never a dispute/resolve/chargeback record itself.
func (t Transaction) CanBeDisputed() bool {
	if t.Status != StatusOK {
		return false
	}
	return t.Type == Withdrawal || t.Type == Deposit
}

// CanCompleteDispute reports whether this transaction may be resolved or
// charged back: it must currently be Disputed and be a deposit or withdrawal.
func (t Transaction) CanCompleteDispute() bool {
	if t.Status != StatusDisputed {
		return false
	}
	return t.Type == Withdrawal || t.Type == Deposit
}
