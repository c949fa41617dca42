package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/config"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/input"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/project"
)

// InitCmd creates the 'init' command.
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a codegen.yaml with the default settings",
		Long: `Write codegen.yaml in the current directory (or the --config path).

The project name and test framework are taken from package.json when
present. An existing file is only replaced after confirmation, or with
--force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.FileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				p := input.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if !p.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false) {
					output.Info("Left " + path + " unchanged")
					return nil
				}
			}

			cfg := config.DefaultConfig()
			info, err := project.Detect(".")
			if err != nil {
				output.Warn(err.Error())
			} else {
				cfg.Project.Name = info.Name
				if info.TestFramework != "" {
					cfg.Generate.TestFramework = info.TestFramework
				}
			}

			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}
			output.Success("Created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")
	return cmd
}
