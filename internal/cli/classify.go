package cli

import (
	"fmt"
	"strings"
	"time"

	"callclassifier/internal/engine"
	"callclassifier/internal/report"
	"callclassifier/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var format string
	var save, notify bool

	cmd := &cobra.Command{
		Use:   "classify [file|-]",
		Short: "Classify one call transcript",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "text", "json", "csv":
			default:
				return fmt.Errorf("unknown format %q (want text, json or csv)", format)
			}

			transcript, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(transcript) == "" {
				return fmt.Errorf("transcript is empty")
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			res, err := engine.Process(cmd.Context(), a.Engine, transcript)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := report.FormatJSON(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "csv":
				row, err := report.FormatCSV(res.Analysis, res.Classification)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, row)
			default:
				fmt.Fprint(out, res.Report)
			}

			if save {
				db, err := a.OpenDB()
				if err != nil {
					return err
				}
				defer db.Close()
				id, err := sqlite.InsertCall(db, res, time.Now().In(a.Config.Location))
				if err != nil {
					return fmt.Errorf("saving call: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved as call #%d\n", id)
			}
			if notify {
				if !a.Notifier.Enabled() {
					return fmt.Errorf("--notify needs slack_bot_token and slack_channel_id")
				}
				if err := a.Notifier.NotifyCall(cmd.Context(), inputLabel(args), res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or csv")
	cmd.Flags().BoolVar(&save, "save", false, "store the result in the call history")
	cmd.Flags().BoolVar(&notify, "notify", false, "post the result to Slack")
	return cmd
}

func inputLabel(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return "stdin"
	}
	return args[0]
}
