package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/profiling"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/tui/theme"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Work with individual models",
	}
	cmd.AddCommand(newModelTestCmd())
	return cmd
}

func newModelTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <model>...",
		Short: "Send the backend's test prompt to one or more models",
		Long: `Asks the backend to run its test prompt against each model in turn, using
the generation defaults from llmcompare.yml unless overridden.

Examples:
  llmcompare model test gpt-4 claude-3-haiku
  llmcompare model test gemini-pro --temperature 0.2 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runModelTest,
	}
	addLLMFlags(cmd)
	return cmd
}

// addLLMFlags registers the generation parameter flags. Unset flags keep
// the configured defaults.
func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, 0 to 2")
	cmd.Flags().Float64("top-p", 0, "Nucleus sampling probability, 0 to 1")
	cmd.Flags().Int("top-k", 0, "Top-k sampling, 1 to 100")
	cmd.Flags().Int("max-tokens", 0, "Maximum tokens per generation, 1 to 4000")
}

// llmConfig returns the configured defaults with any flags applied, clamped
// to the ranges the backend accepts.
func llmConfig(cmd *cobra.Command, cfg *config.Config) models.LLMConfig {
	c := models.LLMConfig{
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
		TopK:        cfg.LLM.TopK,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	flags := cmd.Flags()
	if flags.Changed("temperature") {
		c.Temperature, _ = flags.GetFloat64("temperature")
	}
	if flags.Changed("top-p") {
		c.TopP, _ = flags.GetFloat64("top-p")
	}
	if flags.Changed("top-k") {
		c.TopK, _ = flags.GetInt("top-k")
	}
	if flags.Changed("max-tokens") {
		c.MaxTokens, _ = flags.GetInt("max-tokens")
	}
	return c.Clamp()
}

func runModelTest(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := cli.GetOptions(cmd)
	llm := llmConfig(cmd, e.cfg)
	names := splitModels(args)

	progress := cli.NewReporter(opts.JSONOutput)
	progress.Start(len(names), "Testing models")

	var (
		results []*models.ModelTestResponse
		failed  int
	)
	for _, name := range names {
		span := profiling.Start("test " + name)
		resp, err := e.client.TestModel(cmd.Context(), name, llm)
		span.Stop()
		if err != nil {
			resp = &models.ModelTestResponse{Model: name, Error: err.Error()}
		}
		if resp.Error != "" {
			failed++
		}
		results = append(results, resp)
		progress.Step(name)
	}
	progress.Finish(fmt.Sprintf("%d/%d models answered", len(names)-failed, len(names)))

	out := cmd.OutOrStdout()
	if opts.JSONOutput {
		return printJSON(out, results)
	}

	t := theme.DefaultTheme
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := t.Success.Render(theme.IconSuccess + " ok")
		reply := r.Response
		if r.Error != "" {
			status = t.Error.Render(theme.IconError + " failed")
			reply = r.Error
		}
		rows = append(rows, []string{r.Model, status, truncate(strings.TrimSpace(reply), 60)})
	}
	fmt.Fprintln(out, table.SimpleTable([]string{"Model", "Status", "Response"}, rows))
	return nil
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
