package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/api"
	"github.com/grovetools/llmcompare/pkg/profiling"
	"github.com/grovetools/llmcompare/util/pathutil"
)

// env is what a backend command needs: the loaded configuration, a client
// for the backend it names, and a logger.
type env struct {
	cfg    *config.Config
	client *api.Client
	logger *logrus.Entry
}

func setup(cmd *cobra.Command) (*env, error) {
	defer profiling.Start("load config").Stop()

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cli.GetLogger(cmd)
	client, err := api.NewFromConfig(cfg, api.WithLogger(logger.WithField("component", "api")))
	if err != nil {
		return nil, err
	}
	logger.WithField("base_url", client.BaseURL()).Debug("Using backend")
	return &env{cfg: cfg, client: client, logger: logger}, nil
}

func (e *env) Close() {
	e.client.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addTextFlags registers --text and --file. A --file of "-" reads stdin.
func addTextFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("text", "t", "", "Text to summarize")
	cmd.Flags().StringP("file", "f", "", "Read the text from a file (- for stdin)")
}

// readText returns the text given with --text or --file.
func readText(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case text != "" && file != "":
		return "", errors.Validation("text", "use either --text or --file, not both")
	case text != "":
		return text, nil
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		path, err := pathutil.Expand(file)
		if err != nil {
			return "", errors.Validation("file", err.Error())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Validation("file", fmt.Sprintf("could not read %s: %v", file, err))
		}
		return string(data), nil
	default:
		return "", errors.Validation("text", "no text given: use --text or --file")
	}
}

// splitModels accepts repeated and comma-separated model flags.
func splitModels(values []string) []string {
	var out []string
	for _, v := range values {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}
