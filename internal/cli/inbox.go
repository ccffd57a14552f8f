package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"callclassifier/internal/inbox"

	"github.com/spf13/cobra"
)

func newInboxCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Classify transcript files dropped into the inbox directory",
		Long: `inbox watches inbox_dir on the inbox_schedule cron expression. Every *.txt
file is split on ---, classified, stored in the history, written to
report_output_dir and moved to inbox_dir/processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			db, err := a.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if once {
				result, err := inbox.ProcessInbox(cmd.Context(), a.Config, db, a.Engine, a.Notifier)
				fmt.Fprintln(cmd.OutOrStdout(), inbox.FormatSummary(result))
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := inbox.Run(ctx, a.Config, db, a.Engine, a.Notifier); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "process the inbox once and exit")
	return cmd
}
