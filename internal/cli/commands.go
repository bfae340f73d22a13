package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeswin2007cs/scms/internal/admin"
	"github.com/jeswin2007cs/scms/internal/attendance"
	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/leave"
	"github.com/jeswin2007cs/scms/internal/store"
)

// NewStatsCommand prints the dashboard counts.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print student, course and leave counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, opts, func(ctx context.Context, repo *store.Repository) error {
				ov, err := admin.NewService(repo).Overview(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ov.Stats)
			})
		},
	}
}

// NewAttendanceCommand prints one student's attendance report.
func NewAttendanceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "attendance <gmail>",
		Short: "Print a student's per-course attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, opts, func(ctx context.Context, repo *store.Repository) error {
				student, ok, err := auth.NewAuthenticator(repo).LookupStudent(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no student with gmail %q", args[0])
				}
				report, err := attendance.NewService(repo).Report(ctx, student)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

// NewLeavesCommand prints one student's leave history.
func NewLeavesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leaves <gmail>",
		Short: "Print a student's leave history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, opts, func(ctx context.Context, repo *store.Repository) error {
				own, err := leave.NewService(repo).History(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), own)
			})
		},
	}
}
