package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/tui/components/table"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models the backend can compare",
		Args:  cobra.NoArgs,
		RunE:  runModels,
	}
	cmd.Flags().StringP("provider", "p", "", "Only list models of one provider (openai, anthropic, google)")
	cmd.Flags().StringP("search", "s", "", "Only list models whose name contains this text")
	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	filter := summarization.Filter{}
	filter.Search, _ = cmd.Flags().GetString("search")
	if name, _ := cmd.Flags().GetString("provider"); name != "" {
		p, ok := models.ParseProvider(name)
		if !ok {
			return errors.Validation("provider", fmt.Sprintf("unknown provider %q", name))
		}
		filter.Provider = string(p)
	}

	resp, err := e.client.ListModels(cmd.Context())
	if err != nil {
		return err
	}
	names := filter.Apply(resp.AvailableModels)

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		return printJSON(out, names)
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "No models found.")
		return nil
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, models.ProviderOf(name).DisplayName()})
	}
	fmt.Fprintln(out, table.SimpleTable([]string{"Model", "Provider"}, rows))
	return nil
}
