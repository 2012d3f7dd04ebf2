package main

import (
	"github.com/DjordjeVuckovic/bench-viewer/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newScoresCmd(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scores <data_path>",
		Short: "Print the score table of every run under data_path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(v, args[0])
			if err != nil {
				return err
			}

			r := report.Generate(d)
			report.WriteTable(r, cmd.OutOrStdout())
			if output == "" {
				return nil
			}
			return report.WriteJSON(r, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the report as JSON to this path")

	return cmd
}

