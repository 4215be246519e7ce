package domain

import "github.com/shopspring/decimal"

// Balance holds an account's available and held funds. Total is always
// derived (available + held), never stored, so it can never drift out of
// sync with its components.
type Balance struct {
	Available decimal.Decimal
	Held      decimal.Decimal
}

// NewBalance opens a balance with the given available funds and zero held.
func NewBalance(available decimal.Decimal) Balance {
	return Balance{Available: available, Held: decimal.Zero}
}

// Total returns Available + Held.
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Held)
}

// Account is the aggregate state folded from a stream of TransactionEvents:
// a balance, a lock flag, and every deposit/withdrawal the account has
// recorded, keyed by TxID, with its current dispute status.
type Account struct {
	ID                 uint16
	Balance            Balance
	PendingTransactions map[uint32]Transaction
	Locked             bool
}

// Snapshot is the external, serializable view of an account used for the
// CSV output report.
type Snapshot struct {
	ClientID  uint16          `csv:"client"`
	Available decimal.Decimal `csv:"available"`
	Held      decimal.Decimal `csv:"held"`
	Total     decimal.Decimal `csv:"total"`
	Locked    bool            `csv:"locked"`
}

// Snapshot rounds the balance to four decimal places using round-half-to-
// even (banker's rounding), not truncation.
func (a Account) Snapshot() Snapshot {
	return Snapshot{
		ClientID:  a.ID,
		Available: a.Balance.Available.RoundBank(4),
		Held:      a.Balance.Held.RoundBank(4),
		Total:     a.Balance.Total().RoundBank(4),
		Locked:    a.Locked,
	}
}

// Apply folds a single TransactionEvent onto state, matching core.ApplyFunc.
// state is nil until Opened is applied; every other event requires a
// non-nil state or returns ErrNotOpenedYet.
func Apply(state *Account, event TransactionEvent) (Account, error) {
	switch e := event.(type) {
	case Opened:
		if state != nil {
			return Account{}, ErrAlreadyOpened
		}
		amount := e.Transaction.Amount
		if amount == nil {
			return Account{}, ErrNoMoneyDeposited
		}
		if amount.IsNegative() {
			return Account{}, NegativeTransactionError{TxID: e.TxID}
		}
		tx := e.Transaction
		tx.Status = StatusOK
		return Account{
			ID:      e.AccountID,
			Balance: NewBalance(*amount),
			PendingTransactions: map[uint32]Transaction{
				e.TxID: tx,
			},
		}, nil

	default:
		if state == nil {
			return Account{}, ErrNotOpenedYet
		}
		return applyToExisting(*state, event)
	}
}

func applyToExisting(account Account, event TransactionEvent) (Account, error) {
	switch e := event.(type) {
	case Opened:
		return Account{}, ErrAlreadyOpened

	case DepositRecorded:
		account.Balance.Available = account.Balance.Available.Add(e.Amount)
		account.PendingTransactions = clonePending(account.PendingTransactions)
		tx := e.Transaction
		tx.Status = StatusOK
		account.PendingTransactions[tx.TxID] = tx
		return account, nil

	case WithdrawalRecorded:
		account.Balance.Available = account.Balance.Available.Sub(e.Amount)
		account.PendingTransactions = clonePending(account.PendingTransactions)
		tx := e.Transaction
		tx.Status = StatusOK
		account.PendingTransactions[tx.TxID] = tx
		return account, nil

	case DisputeRecorded:
		return applyDispute(account, e)

	case ResolveRecorded:
		if account.Balance.Held.LessThan(e.Amount) {
			return Account{}, ErrInsufficientHeldFunds
		}
		account.Balance.Held = account.Balance.Held.Sub(e.Amount)
		account.Balance.Available = account.Balance.Available.Add(e.Amount)
		account.PendingTransactions = clonePending(account.PendingTransactions)
		if tx, ok := account.PendingTransactions[e.TxID]; ok {
			tx.Status = StatusResolved
			account.PendingTransactions[e.TxID] = tx
		}
		return account, nil

	case ChargebackRecorded:
		if account.Balance.Held.LessThan(e.Amount) {
			return Account{}, ErrInvalidTransactionChargeback
		}
		account.Balance.Held = account.Balance.Held.Sub(e.Amount)
		account.Locked = true
		account.PendingTransactions = clonePending(account.PendingTransactions)
		if tx, ok := account.PendingTransactions[e.TxID]; ok {
			tx.Status = StatusChargedBack
			account.PendingTransactions[e.TxID] = tx
		}
		return account, nil

	default:
		return Account{}, ErrNotOpenedYet
	}
}

// applyDispute marks the referenced pending transaction Disputed and moves
// funds between available and held depending on the disputed transaction's
// own type.
//
// The withdrawal branch intentionally always increments held even when
// available funds are insufficient to decrement available. This is kept
// as-is rather than "fixed": a disputed withdrawal with insufficient
// available funds still fully holds the disputed amount.
func applyDispute(account Account, e DisputeRecorded) (Account, error) {
	tx, ok := account.PendingTransactions[e.TxID]
	if !ok {
		return Account{}, WrongTransactionRecipientError{TxID: e.TxID}
	}

	account.PendingTransactions = clonePending(account.PendingTransactions)
	tx.Status = StatusDisputed
	account.PendingTransactions[e.TxID] = tx

	switch tx.Type {
	case Deposit:
		account.Balance.Available = account.Balance.Available.Sub(e.Amount)
		account.Balance.Held = account.Balance.Held.Add(e.Amount)
	case Withdrawal:
		if account.Balance.Available.GreaterThanOrEqual(e.Amount) {
			account.Balance.Available = account.Balance.Available.Sub(e.Amount)
		}
		account.Balance.Held = account.Balance.Held.Add(e.Amount)
	default:
		return Account{}, ErrInvalidTransactionDispute
	}

	return account, nil
}

func clonePending(src map[uint32]Transaction) map[uint32]Transaction {
	dst := make(map[uint32]Transaction, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
