package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/llmcompare/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "config not found",
			err:  errors.ConfigNotFound("/tmp/llmcompare.yml"),
			want: []string{"Configuration not found: /tmp/llmcompare.yml", "llmcompare config path"},
		},
		{
			name: "http status",
			err:  errors.HTTPStatus("POST", "/summarization/compare", 500, "Internal Server Error", "boom"),
			want: []string{"Backend error on POST /summarization/compare", "HTTP 500: Internal Server Error (boom)"},
		},
		{
			name: "validation",
			err:  errors.Validation("models", "Select at least two models"),
			want: []string{"❌ Select at least two models"},
		},
		{
			name: "transport",
			err:  errors.Wrap(stderrors.New("connection refused"), errors.ErrCodeTransport, "GET /health failed"),
			want: []string{"Could not reach the backend: GET /health failed", "api.base_url"},
		},
		{
			name: "plain error",
			err:  stderrors.New("something odd"),
			want: []string{"❌ Error: something odd"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			h := &ErrorHandler{Out: &out}
			assert.Same(t, tt.err, h.Handle(tt.err))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			assert.NotContains(t, out.String(), "Error details")
		})
	}

	t.Run("nil", func(t *testing.T) {
		var out bytes.Buffer
		assert.NoError(t, (&ErrorHandler{Out: &out}).Handle(nil))
		assert.Empty(t, out.String())
	})

	t.Run("verbose prints details", func(t *testing.T) {
		var out bytes.Buffer
		h := &ErrorHandler{Verbose: true, Out: &out}
		h.Handle(errors.Validation("max_words", "out of range"))
		assert.Contains(t, out.String(), "Error details")
		assert.Contains(t, out.String(), `"field": "max_words"`)
	})
}

func TestLineReporter(t *testing.T) {
	var out bytes.Buffer
	r := &LineReporter{Out: &out}
	r.Start(2, "Uploading")
	r.Step("a.txt")
	r.Step("b.txt")
	r.Finish("2/2 uploaded")
	assert.Equal(t, "Uploading\n[1/2] a.txt\n[2/2] b.txt\n2/2 uploaded\n", out.String())

	out.Reset()
	r.Start(-1, "Comparing")
	r.Step("gpt-4")
	r.Finish("")
	assert.Equal(t, "Comparing\n[1] gpt-4\n", out.String())
}

func TestBarReporterSpinnerStops(t *testing.T) {
	var out bytes.Buffer
	r := &BarReporter{Out: &out}
	r.Start(-1, "Comparing")
	r.Step("waiting")
	r.Finish("Winner: gpt-4")
	assert.Contains(t, out.String(), "Winner: gpt-4")
	assert.Nil(t, r.stop)
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short", "fits", 10, "fits"},
		{"wraps at words", "one two three four", 9, "one two\nthree\nfour"},
		{"keeps breaks", "a\nb", 10, "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestParseDescription(t *testing.T) {
	desc, ex := parseDescription("Compares models.\n\nExamples:\n  llmcompare compare -m a,b\n")
	assert.Equal(t, "Compares models.", desc)
	assert.Equal(t, "llmcompare compare -m a,b", ex)

	desc, ex = parseDescription("Only text.")
	assert.Equal(t, "Only text.", desc)
	assert.Empty(t, ex)
}

func TestWriteHelp(t *testing.T) {
	root := NewStandardCommand("llmcompare", "Compare LLM summaries")
	sub := &cobra.Command{
		Use:   "compare",
		Short: "Compare summaries",
		Long:  "Runs a comparison.\n\nExamples:\n  # two models\n  llmcompare compare -m gpt-4,gemini-pro",
		RunE:  func(*cobra.Command, []string) error { return nil },
	}
	sub.Flags().Int("max-words", 100, "Target summary length")
	root.AddCommand(sub)

	var out bytes.Buffer
	writeHelp(&out, root, 70)
	help := out.String()
	assert.Contains(t, help, "LLMCOMPARE")
	assert.Contains(t, help, "COMMANDS")
	assert.Contains(t, help, "compare")
	assert.Contains(t, help, "--base-url")

	out.Reset()
	writeHelp(&out, sub, 70)
	help = out.String()
	assert.Contains(t, help, "Runs a comparison.")
	assert.Contains(t, help, "--max-words")
	assert.Contains(t, help, "(default: 100)")
	assert.Contains(t, help, "EXAMPLES")
	assert.Contains(t, help, "# two models")
	assert.NotContains(t, help, "COMMANDS")
}

func TestLoadConfigBaseURLOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LLMCOMPARE_HOME", dir)
	path := filepath.Join(dir, "llmcompare.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\napi:\n  base_url: http://localhost:8000\n"), 0o644))

	newCmd := func(args ...string) *cobra.Command {
		cmd := NewStandardCommand("llmcompare", "test")
		require.NoError(t, cmd.ParseFlags(args))
		return cmd
	}

	cfg, err := LoadConfig(newCmd("--config", path, "--base-url", "http://backend:9000"))
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)

	_, err = LoadConfig(newCmd("--config", path, "--base-url", "not a url"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid), "got %v", err)

	_, err = LoadConfig(newCmd("--config", filepath.Join(dir, "missing.yml")))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestGetOptions(t *testing.T) {
	cmd := NewStandardCommand("llmcompare", "test")
	require.NoError(t, cmd.ParseFlags([]string{"-v", "--json", "-c", "x.yml"}))
	assert.Equal(t, CommandOptions{ConfigFile: "x.yml", Verbose: true, JSONOutput: true}, GetOptions(cmd))
}
