package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/modules/documents"
	"github.com/grovetools/llmcompare/pkg/profiling"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/components/table"
	"github.com/grovetools/llmcompare/util/format"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload documents to the backend",
		Long: `Uploads each file as multipart form data. Paths may use ~ and environment
variables. Every file is attempted; the command fails if any upload failed.

Examples:
  llmcompare upload ~/papers/attention.pdf notes.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	store := state.New(state.WithLogger(logging.NewLogger("state")))
	mod := documents.New(e.client, store,
		documents.WithContext(cmd.Context()),
		documents.WithLogger(e.logger.WithField("component", "documents")),
	)

	opts := cli.GetOptions(cmd)
	progress := cli.NewReporter(opts.JSONOutput)
	progress.Start(len(args), "Uploading")

	var firstErr error
	failed := 0
	for _, path := range args {
		span := profiling.Start("upload " + path)
		_, err := mod.Upload(cmd.Context(), path)
		span.Stop()
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			e.logger.WithError(err).WithField("path", path).Warn("Upload failed")
		}
		progress.Step(path)
	}
	progress.Finish(fmt.Sprintf("%d/%d uploaded", len(args)-failed, len(args)))
	if failed > 0 && !opts.JSONOutput {
		logging.NewPrettyLogger(cmd.ErrOrStderr()).Warn(fmt.Sprintf("%d of %d uploads failed", failed, len(args)))
	}

	uploads := mod.Uploads()
	out := cmd.OutOrStdout()
	if opts.JSONOutput {
		if err := printJSON(out, uploads); err != nil {
			return err
		}
	} else if len(uploads) > 0 {
		rows := make([][]string, 0, len(uploads))
		for _, u := range uploads {
			rows = append(rows, []string{u.Filename, format.FileSize(u.Size), u.Status, u.Message})
		}
		fmt.Fprintln(out, table.SimpleTable([]string{"File", "Size", "Status", "Message"}, rows))
	}
	return firstErr
}
