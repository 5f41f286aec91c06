package commands

import (
	"github.com/spf13/cobra"

	"github.com/user/fips-dashboard/internal/commands/dashboard"
	"github.com/user/fips-dashboard/internal/commands/timeline"
)

var rootCmd = &cobra.Command{
	Use:   "fipsdash",
	Short: "FIP status dashboard generator",
}

func init() {
	rootCmd.AddCommand(dashboard.NewCommand())
	rootCmd.AddCommand(timeline.NewCommand())
}

func Execute() error {
	return rootCmd.Execute()
}
