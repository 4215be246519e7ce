package domain

import "github.com/ledgerflow/payments-engine/pkg/eventsourcing/core"

// AccountRoot wraps a generic core.Root[uint16, Account, TransactionEvent]
// with the command methods of the Account aggregate. Every command checks
// the locked-account guard before any other validation.
type AccountRoot struct {
	*core.Root[uint16, Account, TransactionEvent]
}

// NewAccountRoot constructs an empty root for accountID, ready to Open.
func NewAccountRoot(accountID uint16) *AccountRoot {
	return &AccountRoot{core.NewRoot[uint16, Account](accountID, Apply)}
}

func (a *AccountRoot) locked(txID uint32) error {
	state, ok := a.State()
	if !ok {
		return nil
	}
	if state.Locked {
		return LockedAccountError{AccountID: a.ID(), TxID: txID}
	}
	return nil
}

// Open records the first deposit that brings an account into existence.
func (a *AccountRoot) Open(tx Transaction) error {
	return a.RecordNew(Opened{
		TxID:        tx.TxID,
		AccountID:   tx.ClientID,
		Transaction: tx,
	})
}

// DepositFunds validates and records a deposit against an already-open account.
func (a *AccountRoot) DepositFunds(tx Transaction) error {
	if err := a.locked(tx.TxID); err != nil {
		return err
	}
	if tx.Amount == nil {
		return ErrNoMoneyDeposited
	}
	if tx.Amount.IsNegative() {
		return NegativeTransactionError{TxID: tx.TxID}
	}
	state, ok := a.State()
	if !ok {
		return ErrNotOpenedYet
	}
	if _, exists := state.PendingTransactions[tx.TxID]; exists {
		return DuplicateTransactionRecipientError{TxID: tx.TxID}
	}
	return a.RecordThat(DepositRecorded{Amount: *tx.Amount, Transaction: tx})
}

// WithdrawFunds validates and records a withdrawal against an open account.
// Checks run in order: locked, amount present, amount non-negative,
// sufficient available funds, then duplicate TxID.
func (a *AccountRoot) WithdrawFunds(tx Transaction) error {
	if err := a.locked(tx.TxID); err != nil {
		return err
	}
	if tx.Amount == nil {
		return ErrNoMoneyDeposited
	}
	if tx.Amount.IsNegative() {
		return NegativeTransactionError{TxID: tx.TxID}
	}
	state, ok := a.State()
	if !ok {
		return ErrNotOpenedYet
	}
	if state.Balance.Available.LessThan(*tx.Amount) {
		return ErrInsufficientFunds
	}
	if _, exists := state.PendingTransactions[tx.TxID]; exists {
		return DuplicateTransactionRecipientError{TxID: tx.TxID}
	}
	return a.RecordThat(WithdrawalRecorded{Amount: *tx.Amount, Transaction: tx})
}

// Dispute opens a dispute against tx.TxID if it references an eligible
// pending transaction.
func (a *AccountRoot) Dispute(tx Transaction) error {
	if err := a.locked(tx.TxID); err != nil {
		return err
	}
	state, _ := a.State()
	disputed, ok := state.PendingTransactions[tx.TxID]
	if !ok || !disputed.CanBeDisputed() {
		return WrongTransactionRecipientError{TxID: tx.TxID}
	}
	if disputed.Amount == nil {
		return ErrNoMoneyDeposited
	}
	return a.RecordThat(DisputeRecorded{TxID: tx.TxID, Amount: *disputed.Amount})
}

// Resolve completes a dispute in the client's favor.
func (a *AccountRoot) Resolve(tx Transaction) error {
	if err := a.locked(tx.TxID); err != nil {
		return err
	}
	state, _ := a.State()
	disputed, ok := state.PendingTransactions[tx.TxID]
	if !ok || !disputed.CanCompleteDispute() {
		return WrongTransactionRecipientError{TxID: tx.TxID}
	}
	if disputed.Amount == nil {
		return ErrNoMoneyDeposited
	}
	return a.RecordThat(ResolveRecorded{TxID: tx.TxID, Amount: *disputed.Amount})
}

// Chargeback completes a dispute by reversing the funds and locking the account.
func (a *AccountRoot) Chargeback(tx Transaction) error {
	if err := a.locked(tx.TxID); err != nil {
		return err
	}
	state, _ := a.State()
	disputed, ok := state.PendingTransactions[tx.TxID]
	if !ok || !disputed.CanCompleteDispute() {
		return WrongTransactionRecipientError{TxID: tx.TxID}
	}
	if disputed.Amount == nil {
		return ErrNoMoneyDeposited
	}
	return a.RecordThat(ChargebackRecorded{TxID: tx.TxID, Amount: *disputed.Amount})
}
