// Package cli implements scmsctl, a read-only operator tool over the SCMS store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeswin2007cs/scms/internal/config"
	"github.com/jeswin2007cs/scms/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir string
	Backend string
}

// NewRootCommand creates the scmsctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "scmsctl",
		Short:         "Inspect SCMS data",
		Long:          "scmsctl reads the SCMS documents through the same store the server uses and prints JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding the JSON documents (overrides DATA_DIR)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "store backend: file, sqlite, postgres or redis (overrides STORE_BACKEND)")

	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewAttendanceCommand(opts))
	cmd.AddCommand(NewLeavesCommand(opts))

	return cmd
}

// openRepository opens the configured store with flag overrides applied.
// The caller must call the returned close func.
func openRepository(opts *RootOptions) (*store.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	storeOpts := cfg.StoreOptions()
	if opts.DataDir != "" {
		storeOpts.Dir = opts.DataDir
	}
	if opts.Backend != "" {
		storeOpts.Backend = opts.Backend
	}

	docs, err := store.Open(storeOpts)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRepository(docs), func() { _ = docs.Close() }, nil
}

// withRepository runs fn against an open repository.
func withRepository(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *store.Repository) error) error {
	repo, closeFn, err := openRepository(opts)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(cmd.Context(), repo)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
