package cli

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

// configShowCmd dumps the merged configuration so flag/file/default
// precedence surprises are easy to spot.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pp.Println(getConfig())
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
