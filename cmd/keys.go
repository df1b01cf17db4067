package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/pkg/modules/dashboard"
	"github.com/grovetools/llmcompare/pkg/modules/documents"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/app"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/tui/keymap"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [view]",
		Short: "List the TUI keybindings after configuration overrides",
		Long: `Lists every keybinding of the TUI frame and its pages, with the name to use
under keybindings.global or keybindings.views.<view> in llmcompare.yml to
rebind it.

Examples:
  llmcompare keys summarization
  llmcompare keys --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runKeys,
	}
}

// keyViews returns the keymap of the frame and of every page for kc.
func keyViews(kc keymap.Config) []keymap.ViewInfo {
	store := state.New()
	return []keymap.ViewInfo{
		keymap.MakeViewInfo("app", "Navigation and frame keys, active on every page", app.NewKeyMap(kc)),
		keymap.MakeViewInfo(dashboard.Name, "Dashboard", dashboard.New(nil, store, dashboard.WithKeyConfig(kc)).Keys()),
		keymap.MakeViewInfo(summarization.Name, "Summarization comparison page", summarization.New(nil, store, summarization.WithKeyConfig(kc)).Keys()),
		keymap.MakeViewInfo(documents.Name, "Document upload page", documents.New(nil, store, documents.WithKeyConfig(kc)).Keys()),
	}
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	kc, err := keymap.LoadConfig(cfg)
	if err != nil {
		return err
	}

	views := keyViews(kc)
	if len(args) == 1 {
		var match []keymap.ViewInfo
		for _, v := range views {
			if v.Name == args[0] {
				match = append(match, v)
			}
		}
		if len(match) == 0 {
			return fmt.Errorf("unknown view %q", args[0])
		}
		views = match
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		return printJSON(out, views)
	}
	for _, v := range views {
		var rows [][]string
		for _, s := range v.Sections {
			for _, b := range s.Bindings {
				if !b.Enabled {
					continue
				}
				rows = append(rows, []string{s.Name, strings.Join(b.Keys, " "), b.Description, b.ConfigKey})
			}
		}
		fmt.Fprintf(out, "%s: %s\n", v.Name, v.Description)
		fmt.Fprintln(out, table.SimpleTable([]string{"Section", "Keys", "Action", "Config key"}, rows))
	}
	return nil
}
