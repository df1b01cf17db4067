package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/tui/components/markdown"
	"github.com/grovetools/llmcompare/tui/components/table"
)

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Single-model summarization tools",
	}
	cmd.AddCommand(newSummarizeTestCmd())
	return cmd
}

func newSummarizeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Get one quick summary from one model",
		Long: `Asks a single model for one summary, without evaluation. Useful to check a
model and a prompt length before running a full comparison.

Examples:
  llmcompare summarize test -m gpt-4 -f article.txt --max-words 40`,
		Args: cobra.NoArgs,
		RunE: runSummarizeTest,
	}
	addTextFlags(cmd)
	cmd.Flags().StringP("model", "m", "", "Model to ask")
	cmd.Flags().Int("max-words", 0, "Target summary length in words, 20 to 500")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, 0 to 2")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func runSummarizeTest(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	text, err := readText(cmd)
	if err != nil {
		return err
	}
	model, _ := cmd.Flags().GetString("model")

	req := models.SummaryTestRequest{
		Text:        text,
		Model:       model,
		MaxWords:    e.cfg.Summarization.MaxWords,
		Temperature: e.cfg.LLM.Temperature,
	}
	if cmd.Flags().Changed("max-words") {
		req.MaxWords, _ = cmd.Flags().GetInt("max-words")
		if req.MaxWords < models.MinMaxWords || req.MaxWords > models.MaxMaxWords {
			return errors.Validation("max_words", fmt.Sprintf("--max-words must be between %d and %d", models.MinMaxWords, models.MaxMaxWords))
		}
	}
	if cmd.Flags().Changed("temperature") {
		req.Temperature, _ = cmd.Flags().GetFloat64("temperature")
		if req.Temperature < models.MinTemperature || req.Temperature > models.MaxTemperature {
			return errors.Validation("temperature", fmt.Sprintf("--temperature must be between %.0f and %.0f", models.MinTemperature, models.MaxTemperature))
		}
	}

	resp, err := e.client.TestSummary(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		return printJSON(out, resp)
	}
	fmt.Fprintln(out, table.StatusTable([][]string{
		{"Model", resp.Model},
		{"Words", fmt.Sprintf("%d (target %d)", resp.WordCount, req.MaxWords)},
	}))
	fmt.Fprintln(out)
	fmt.Fprintln(out, markdown.Render(resp.Summary, reportWidth))
	return nil
}
