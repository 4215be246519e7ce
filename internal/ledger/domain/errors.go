package domain

import (
	"errors"
	"fmt"
)

// Stateless domain errors for failures that carry no per-occurrence data.
var (
	ErrNotOpenedYet                 = errors.New("account not opened yet")
	ErrAlreadyOpened                = errors.New("account already opened")
	ErrNoMoneyDeposited              = errors.New("no money deposited")
	ErrInsufficientFunds            = errors.New("insufficient available funds")
	ErrInvalidTransactionDispute     = errors.New("invalid transaction dispute")
	ErrInvalidTransactionChargeback  = errors.New("invalid transaction chargeback")
	ErrInsufficientHeldFunds         = errors.New("insufficient held funds")
)

// NegativeTransactionError reports a deposit or withdrawal with a negative
// amount.
type NegativeTransactionError struct {
	TxID uint32
}

func (e NegativeTransactionError) Error() string {
	return fmt.Sprintf("negative transaction attempted: tx %d", e.TxID)
}

// WrongTransactionRecipientError reports a dispute/resolve/chargeback that
// references a transaction not eligible for that action (unknown TxID, or
// the transaction is not in the right status).
type WrongTransactionRecipientError struct {
	TxID uint32
}

func (e WrongTransactionRecipientError) Error() string {
	return fmt.Sprintf("wrong transaction recipient: tx %d", e.TxID)
}

// DuplicateTransactionRecipientError reports a deposit or withdrawal whose
// TxID has already been recorded against this account.
type DuplicateTransactionRecipientError struct {
	TxID uint32
}

func (e DuplicateTransactionRecipientError) Error() string {
	return fmt.Sprintf("duplicate transaction recipient: tx %d", e.TxID)
}

// LockedAccountError reports any command rejected because the account is locked.
type LockedAccountError struct {
	AccountID uint16
	TxID      uint32
}

func (e LockedAccountError) Error() string {
	return fmt.Sprintf("account %d is locked: rejected tx %d", e.AccountID, e.TxID)
}
