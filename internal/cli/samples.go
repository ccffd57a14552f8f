package cli

import (
	"fmt"

	"callclassifier/internal/engine"
	"callclassifier/internal/samples"

	"github.com/spf13/cobra"
)

func newSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the bundled sample calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range samples.All() {
				fmt.Fprintf(out, "%d. %s [%s]\n", s.ID, s.Name, s.Category)
			}
			return nil
		},
	}

	var id int
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Classify the sample calls and compare with their labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := samples.All()
			if id != 0 {
				s, ok := samples.ByID(id)
				if !ok {
					return fmt.Errorf("no sample with id %d", id)
				}
				list = []samples.Sample{s}
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			correct := 0
			for _, s := range list {
				res, err := engine.Process(cmd.Context(), a.Engine, s.Transcript)
				if err != nil {
					return fmt.Errorf("sample %d: %w", s.ID, err)
				}
				got := res.Classification.PrimaryCategory
				mark := "MISS"
				if got == s.Category {
					mark = "OK"
					correct++
				}
				fmt.Fprintf(out, "%d. %s: expected %s, predicted %s (%s%%) %s\n",
					s.ID, s.Name, s.Category, got, res.Classification.Confidence(), mark)
			}
			fmt.Fprintf(out, "\n%d/%d samples matched their label\n", correct, len(list))
			return nil
		},
	}
	runCmd.Flags().IntVar(&id, "id", 0, "run a single sample")

	cmd.AddCommand(runCmd)
	return cmd
}
