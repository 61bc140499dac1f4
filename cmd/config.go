package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the settings a convert run would use.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective conversion settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to render settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	addSettingsFlags(configCmd)
}
