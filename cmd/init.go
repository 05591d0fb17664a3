package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sidenav configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure sidenav for your project and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
