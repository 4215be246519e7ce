// Package application hosts the command handler that turns an inbound
// Transaction into a load-mutate-save cycle against the account repository.
package application

import (
	"errors"

	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/ledgerflow/payments-engine/internal/platform/logging"
	"github.com/ledgerflow/payments-engine/pkg/eventsourcing/core"
)

// AccountRepository is the subset of core.Repository the service needs,
// narrowed to the Account aggregate.
type AccountRepository interface {
	Get(id uint16) (*domain.AccountRoot, error)
	Save(root *domain.AccountRoot) error
}

// Repository adapts a core.Repository[uint16, domain.Account,
// domain.TransactionEvent] to AccountRepository, wrapping its plain
// *core.Root return value in a domain.AccountRoot so command methods are
// reachable on the loaded aggregate.
type Repository struct {
	inner *core.Repository[uint16, domain.Account, domain.TransactionEvent]
}

// NewRepository builds a Repository backed by store.
func NewRepository(store core.Store[uint16, domain.TransactionEvent]) *Repository {
	return &Repository{inner: core.NewRepository[uint16, domain.Account](store, domain.Apply)}
}

func (r *Repository) Get(id uint16) (*domain.AccountRoot, error) {
	root, err := r.inner.Get(id)
	if err != nil {
		return nil, err
	}
	return &domain.AccountRoot{Root: root}, nil
}

func (r *Repository) Save(root *domain.AccountRoot) error {
	return r.inner.Save(root.Root)
}

// Service is the command handler: one method per transaction type, each a
// load (or open), mutate, save cycle.
type Service struct {
	repository AccountRepository
	logger     logging.Logger
}

// NewService builds a Service over repository, logging through logger.
func NewService(repository AccountRepository, logger logging.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Handle dispatches tx to the matching command method.
func (s *Service) Handle(tx domain.Transaction) error {
	switch tx.Type {
	case domain.Deposit:
		return s.deposit(tx)
	case domain.Withdrawal:
		return s.withdrawal(tx)
	case domain.Dispute:
		return s.dispute(tx)
	case domain.Resolve:
		return s.resolve(tx)
	case domain.Chargeback:
		return s.chargeback(tx)
	default:
		return nil
	}
}

// deposit opens a new account on first sight of a client, or deposits into
// an existing one. Get errors other than ErrNotFound are propagated.
func (s *Service) deposit(tx domain.Transaction) error {
	account, err := s.repository.Get(tx.ClientID)
	switch {
	case err == nil:
		if depositErr := account.DepositFunds(tx); depositErr != nil {
			s.logger.Warn("deposit rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", depositErr)
			return depositErr
		}
		return s.repository.Save(account)

	case errors.Is(err, core.ErrNotFound):
		account = domain.NewAccountRoot(tx.ClientID)
		if openErr := account.Open(tx); openErr != nil {
			s.logger.Warn("open rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", openErr)
			return openErr
		}
		return s.repository.Save(account)

	default:
		return err
	}
}

func (s *Service) withdrawal(tx domain.Transaction) error {
	account, err := s.repository.Get(tx.ClientID)
	if err != nil {
		return err
	}
	if err := account.WithdrawFunds(tx); err != nil {
		s.logger.Warn("withdrawal rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", err)
		return err
	}
	return s.repository.Save(account)
}

func (s *Service) dispute(tx domain.Transaction) error {
	account, err := s.repository.Get(tx.ClientID)
	if err != nil {
		return err
	}
	if err := account.Dispute(tx); err != nil {
		s.logger.Warn("dispute rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", err)
		return err
	}
	return s.repository.Save(account)
}

func (s *Service) resolve(tx domain.Transaction) error {
	account, err := s.repository.Get(tx.ClientID)
	if err != nil {
		return err
	}
	if err := account.Resolve(tx); err != nil {
		s.logger.Warn("resolve rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", err)
		return err
	}
	return s.repository.Save(account)
}

func (s *Service) chargeback(tx domain.Transaction) error {
	account, err := s.repository.Get(tx.ClientID)
	if err != nil {
		return err
	}
	if err := account.Chargeback(tx); err != nil {
		s.logger.Warn("chargeback rejected", "client_id", tx.ClientID, "tx_id", tx.TxID, "error", err)
		return err
	}
	return s.repository.Save(account)
}
