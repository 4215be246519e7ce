package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ledgerflow/payments-engine/internal/ledger/application"
	"github.com/ledgerflow/payments-engine/internal/ledger/connectors"
	"github.com/ledgerflow/payments-engine/internal/ledger/runtime"
	"github.com/ledgerflow/payments-engine/internal/platform/config"
	"github.com/ledgerflow/payments-engine/internal/platform/logging"
	"github.com/ledgerflow/payments-engine/internal/ledger/domain"
	"github.com/ledgerflow/payments-engine/pkg/eventsourcing/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the payments-engine command: a single positional input
// path, defaulting to stdin when omitted.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments-engine [input-file]",
		Short: "Replay a transaction log and print a per-client balance snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}

	settings := config.Bind(cmd.Flags())
	cmd.SetContext(context.WithValue(context.Background(), settingsKey{}, settings))

	return cmd
}

type settingsKey struct{}

func run(cmd *cobra.Command, args []string) error {
	v := cmd.Context().Value(settingsKey{}).(*viper.Viper)
	settingsView := config.Load(v)

	format := logging.FormatText
	if settingsView.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logger, err := logging.New(format, settingsView.Verbosity)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	var input *os.File
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		input = f
	} else {
		input = os.Stdin
	}

	store := core.NewMemoryStore[uint16, domain.TransactionEvent]()
	repository := application.NewRepository(store)
	service := application.NewService(repository, logger)

	idle := runtime.New(service, logger)
	idle, err = idle.WithConnector("input", connectors.NewCSVConnector(input, logger))
	if err != nil {
		return fmt.Errorf("registering connector: %w", err)
	}

	dead, err := idle.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	var snapshots []domain.Snapshot
	for _, id := range dead.AccountIDs() {
		account, err := repository.Get(id)
		if err != nil {
			logger.Error("failed to load account for report", "client_id", id, "error", err)
			continue
		}
		state, ok := account.State()
		if !ok {
			continue
		}
		snapshots = append(snapshots, state.Snapshot())
	}

	return connectors.WriteSnapshots(cmd.OutOrStdout(), snapshots)
}
