package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/tab_buddy/internal/adapters/memory"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/core/services"
	"github.com/SscSPs/tab_buddy/internal/platform/config"
	"github.com/SscSPs/tab_buddy/pkg/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// runtime is what every subcommand needs once the root pre-run has completed.
type runtime struct {
	cfg      *config.Config
	ctx      context.Context
	store    *memory.Store
	services *portssvc.ServiceContainer
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rt := &runtime{cfg: cfg}

	root := &cobra.Command{
		Use:           "tabbuddy",
		Short:         "Split shared expenses and net debts per currency",
		Long:          "Split expenses between group members and see who owes whom, per currency, from a JSON snapshot of a group's expenses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return rt.init(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "JSON snapshot with currencies, rates, users, groups and expenses")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")

	root.AddCommand(
		newSplitCmd(rt),
		newBalancesCmd(rt),
		newMembersCmd(rt),
		newCategoriesCmd(rt),
		newExpensesCmd(rt),
		newShowCmd(rt),
		newAddCmd(rt),
		newEditCmd(rt),
		newCurrenciesCmd(rt),
	)
	return root
}

// init sets up logging, loads the snapshot and builds the services. Every run
// gets its own run_id on the context logger.
func (rt *runtime) init(cmd *cobra.Command) error {
	if err := rt.cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.Setup(rt.cfg.LogLevel, rt.cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("command", cmd.Name()),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt.ctx = logging.NewContext(ctx, logger)

	store, err := memory.LoadSnapshot(rt.cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	rt.store = store
	rt.services = services.NewServiceContainer(rt.cfg, memory.NewRepositoryProvider(store))

	logger.Debug("Snapshot loaded",
		slog.String("path", rt.cfg.SnapshotPath),
		slog.String("ledger_strategy", rt.cfg.LedgerStrategy))
	return nil
}

// persist writes the store back to the snapshot file.
func (rt *runtime) persist() error {
	if err := rt.store.WriteSnapshot(rt.cfg.SnapshotPath); err != nil {
		return err
	}
	logging.FromContext(rt.ctx).Info("Snapshot written", slog.String("path", rt.cfg.SnapshotPath))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
