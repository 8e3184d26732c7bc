package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cloudbench/gcsbench/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios defined in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		catalog, err := scenario.LoadCatalog(getConfig().ScenarioFilePath())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, name := range catalog.Names() {
			s, err := catalog.Lookup(name)
			if err != nil {
				return err
			}
			bold.Fprintln(cmd.OutOrStdout(), name)
			if s.Description != "" {
				cmd.Printf("  %s\n", s.Description)
			}
			cmd.Printf("  %d case(s)\n", len(s.Cases))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
