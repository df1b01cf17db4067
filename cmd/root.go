// Package cmd holds the llmcompare command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/pkg/profiling"
	"github.com/grovetools/llmcompare/version"
)

// NewRootCmd builds the llmcompare command. Run without a subcommand it
// starts the TUI.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"llmcompare",
		"Compare LLM summaries side by side against an llmcompare backend",
	)
	root.Long = `Compare how several language models summarize the same text, using the
scores an evaluator model assigns to every summary.

Without a subcommand llmcompare opens the interactive TUI.

Examples:
  # Open the TUI on the summarization page
  llmcompare tui --start /summarization

  # Compare three models on a file and print the report
  llmcompare compare -m gpt-4,claude-3-sonnet,gemini-pro -f article.txt

  # List the models the backend offers
  llmcompare models --provider anthropic`
	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, "")
	}
	cli.SetVersionTemplate(root, version.GetInfo())

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRunE = profiler.PostRun

	root.AddCommand(
		newTUICmd(),
		newModelsCmd(),
		newModelCmd(),
		newCompareCmd(),
		newSummarizeCmd(),
		newUploadCmd(),
		newHealthCmd(),
		newConfigCmd(),
		newKeysCmd(),
		cli.NewVersionCommand("llmcompare", version.GetInfo()),
	)
	return root
}
