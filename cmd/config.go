package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/paths"
	"github.com/grovetools/llmcompare/tui/components/table"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the llmcompare configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSchemaCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after layering and defaults",
		Long: `Prints the configuration llmcompare would use from the current directory:
the global file, the project file and any override file merged in that order,
with environment variables expanded and defaults applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(out, cfg)
			}

			if cfg.Source != "" {
				fmt.Fprintf(out, "# Source: %s\n", cfg.Source)
			} else {
				fmt.Fprintln(out, "# No configuration file found; showing defaults")
			}
			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch format {
			case "yaml":
				data, err = yaml.Marshal(cfg)
			case "toml":
				data, err = toml.Marshal(cfg)
			default:
				return errors.Validation("format", fmt.Sprintf("unknown format %q: use yaml or toml", format))
			}
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().String("format", "yaml", "Output format: yaml or toml")
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for llmcompare.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// PathsOutput lists where llmcompare reads and writes files.
type PathsOutput struct {
	ProjectConfig string `json:"project_config,omitempty"`
	GlobalConfig  string `json:"global_config"`
	ConfigDir     string `json:"config_dir"`
	StylesDir     string `json:"styles_dir"`
	StateDir      string `json:"state_dir"`
	LogDir        string `json:"log_dir"`
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where llmcompare looks for configuration",
		Long: `Prints the configuration file found from the current directory, the global
configuration file, and the XDG directories llmcompare uses. LLMCOMPARE_HOME
moves all of them under one root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				GlobalConfig: config.GlobalConfigPath(),
				ConfigDir:    paths.ConfigDir(),
				StylesDir:    paths.StylesDir(),
				StateDir:     paths.StateDir(),
				LogDir:       paths.LogDir(),
			}
			if cwd, err := os.Getwd(); err == nil {
				output.ProjectConfig, _ = config.FindConfigFile(cwd)
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(out, output)
			}
			project := output.ProjectConfig
			if project == "" {
				project = "(none found)"
			}
			fmt.Fprintln(out, table.StatusTable([][]string{
				{"Project config", project},
				{"Global config", output.GlobalConfig},
				{"Styles", output.StylesDir},
				{"Logs", output.LogDir},
			}))
			return nil
		},
	}
}
