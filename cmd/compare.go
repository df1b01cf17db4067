package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/bootstrap"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/profiling"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/components/markdown"
	"github.com/grovetools/llmcompare/util/pathutil"
	"github.com/grovetools/llmcompare/util/sanitize"
)

const reportWidth = 88

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare summaries of a text from several models",
		Long: `Asks every model for several summaries of the text, has the evaluator score
them, and prints the per-model scores and the recommendation.

Between 2 and 5 models can be compared at once.

Examples:
  llmcompare compare -m gpt-4 -m claude-3-sonnet -f article.txt
  cat article.txt | llmcompare compare -m gpt-4,gemini-pro -f - --max-words 50
  llmcompare compare -m gpt-4,claude-3-haiku -f notes.md --json --save-dir ./runs`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}
	addTextFlags(cmd)
	addLLMFlags(cmd)
	cmd.Flags().StringSliceP("model", "m", nil, "Model to compare (repeat or comma-separate)")
	cmd.Flags().Int("max-words", 0, "Target summary length in words, 20 to 500")
	cmd.Flags().String("save-dir", "", "Also write the raw comparison as JSON into this directory")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	text, err := readText(cmd)
	if err != nil {
		return err
	}
	names, _ := cmd.Flags().GetStringSlice("model")

	store := state.New(state.WithLogger(logging.NewLogger("state")))
	bootstrap.Seed(store, e.cfg)
	mod := summarization.New(e.client, store,
		summarization.WithContext(ctx),
		summarization.WithLogger(e.logger.WithField("component", "summarization")),
	)
	mod.SetText(text)
	mod.SetSelection(splitModels(names))
	if err := applyParamFlags(cmd, mod); err != nil {
		return err
	}
	if _, err := mod.BuildRequest(); err != nil {
		return err
	}

	opts := cli.GetOptions(cmd)
	progress := cli.NewReporter(opts.JSONOutput)
	progress.Start(-1, fmt.Sprintf("Comparing %s", strings.Join(mod.Selected(), ", ")))
	span := profiling.Start("compare")
	resp, err := mod.StartComparison(ctx)
	span.Stop()
	if err != nil {
		progress.Finish("")
		return err
	}
	progress.Finish(fmt.Sprintf("Winner: %s", resp.Winner))

	if dir, _ := cmd.Flags().GetString("save-dir"); dir != "" {
		path, err := saveComparison(dir, resp, time.Now())
		if err != nil {
			return err
		}
		e.logger.WithField("path", path).Debug("Saved comparison")
		if !opts.JSONOutput {
			pretty := logging.NewPrettyLogger(cmd.ErrOrStderr())
			pretty.Success("Saved comparison")
			pretty.Field("path", path)
		}
	}

	out := cmd.OutOrStdout()
	if opts.JSONOutput {
		return printJSON(out, resp)
	}
	report := summarization.BuildReport(resp.Results, resp.Evaluations, resp.Winner)
	fmt.Fprintln(out, summarization.RenderReport(report, reportWidth))
	if resp.BestSummary != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, markdown.Render("## Best summary\n\n"+resp.BestSummary, reportWidth))
	}
	return nil
}

// applyParamFlags copies changed generation flags into the module's settings.
func applyParamFlags(cmd *cobra.Command, mod *summarization.Module) error {
	flags := map[string]string{
		"temperature": summarization.ParamTemperature,
		"top-p":       summarization.ParamTopP,
		"top-k":       summarization.ParamTopK,
		"max-tokens":  summarization.ParamMaxTokens,
		"max-words":   summarization.ParamMaxWords,
	}
	for flag, param := range flags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		var v float64
		if _, err := fmt.Sscan(f.Value.String(), &v); err != nil {
			return fmt.Errorf("invalid --%s: %w", flag, err)
		}
		if _, err := mod.SetParam(param, v); err != nil {
			return err
		}
	}
	return nil
}

// saveComparison writes resp as JSON into dir under a name built from the
// time and the compared models, and returns the file's path.
func saveComparison(dir string, resp *models.ComparisonResponse, at time.Time) (string, error) {
	dir, err := pathutil.Expand(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	names := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		names = append(names, r.Model)
	}
	name := fmt.Sprintf("%s-%s.json", at.Format("20060102-150405"), sanitize.ForFilename(strings.Join(names, " ")))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := printJSON(f, resp); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
