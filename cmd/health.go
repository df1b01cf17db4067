package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/tui/theme"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Long: `Calls the backend's health endpoint. Exits non-zero when the backend is
unreachable or reports a status other than healthy.`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	resp, err := e.client.Health(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		if err := printJSON(out, resp); err != nil {
			return err
		}
	} else {
		t := theme.DefaultTheme
		status := t.Success.Render(theme.IconSuccess + " " + resp.Status)
		if !resp.Healthy() {
			status = t.Warning.Render(theme.IconWarning + " " + resp.Status)
		}
		rows := [][]string{
			{"Backend", e.client.BaseURL()},
			{"Status", status},
		}
		if resp.Version != "" {
			rows = append(rows, []string{"Version", resp.Version})
		}
		if len(resp.AvailableProviders) > 0 {
			rows = append(rows, []string{"Providers", strings.Join(resp.AvailableProviders, ", ")})
		}
		keys := make([]string, 0, len(resp.Config))
		for k := range resp.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprint(resp.Config[k])})
		}
		fmt.Fprintln(out, table.StatusTable(rows))
	}

	if !resp.Healthy() {
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("backend reported status %q", resp.Status))
	}
	return nil
}
