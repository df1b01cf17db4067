package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("LLMCOMPARE_HOME", t.TempDir())
	defer Reset()

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	if again := NewLogger("test-component"); again != logger {
		t.Error("Expected the same entry for the same component")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}, Plain: true})

	entry := logger.WithField("component", "test")
	entry.Info("Test message")

	output := buf.String()

	if !strings.Contains(output, "[INFO]") {
		t.Errorf("Expected output to contain [INFO], got: %s", output)
	}
	if !strings.Contains(output, "[test]") {
		t.Errorf("Expected output to contain [test], got: %s", output)
	}
	if !strings.Contains(output, "Test message") {
		t.Errorf("Expected output to contain 'Test message', got: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "test message",
				Data: logrus.Fields{
					"component": "api",
					"status":    500,
				},
			},
			want: []string{"[INFO]", "[api]", "test message", "status=500"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "slow response",
				Data:    logrus.Fields{"component": "api"},
			},
			want:    []string{"[WARN]", "slow response"},
			notWant: []string{"[api]", "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config, Plain: true}
			out, err := f.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			s := string(out)
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("Expected output to contain %q, got: %s", w, s)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(s, nw) {
					t.Errorf("Expected output not to contain %q, got: %s", nw, s)
				}
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}, Plain: true}
	out, err := f.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"zeta": 1, "alpha": 2, "mid": 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out); got != "[INFO] m alpha=2 mid=3 zeta=1\n" {
		t.Errorf("Unexpected field order: %q", got)
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.WarnLevel)

	entry := logger.WithField("component", "test")

	entry.Debug("debug message")
	entry.Info("info message")
	entry.Warn("warn message")
	entry.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("Debug message should not appear at Warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should not appear at Warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should appear at Warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should appear at Warn level")
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("LLMCOMPARE_HOME", t.TempDir())
	t.Setenv("LLMCOMPARE_LOG_LEVEL", "debug")
	t.Setenv("LLMCOMPARE_LOG_CALLER", "true")
	defer Reset()

	logger := NewLogger("env-test")

	if logger.Logger.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level from env var, got %v", logger.Logger.Level)
	}
	if !logger.Logger.ReportCaller {
		t.Error("Expected caller reporting to be enabled from env var")
	}
}

func TestResolveLevel(t *testing.T) {
	t.Setenv("LLMCOMPARE_LOG_LEVEL", "")

	if got := resolveLevel(Config{}); got != logrus.InfoLevel {
		t.Errorf("Expected info by default, got %v", got)
	}
	if got := resolveLevel(Config{Level: "error"}); got != logrus.ErrorLevel {
		t.Errorf("Expected configured level, got %v", got)
	}
	if got := resolveLevel(Config{Level: "loud"}); got != logrus.InfoLevel {
		t.Errorf("Expected fallback to info for bad level, got %v", got)
	}
}

func TestFileSinkJSON(t *testing.T) {
	t.Setenv("LLMCOMPARE_LOG_LEVEL", "")
	logPath := filepath.Join(t.TempDir(), "logs", "api.log")

	logger := newLogger("api", Config{
		File:   FileSinkConfig{Enabled: true, Path: logPath, Format: "json"},
		Format: FormatConfig{StructuredToStderr: "never"},
	})
	logger.WithField("component", "api").WithField("status", 422).Warn("request failed")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Expected log file to be written: %v", err)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("Expected JSON line, got %q: %v", data, err)
	}
	if record["msg"] != "request failed" {
		t.Errorf("Unexpected msg: %v", record["msg"])
	}
	if record["status"] != float64(422) {
		t.Errorf("Unexpected status: %v", record["status"])
	}
}

func TestShouldLogToStderr(t *testing.T) {
	if !shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "always"}}, logrus.InfoLevel) {
		t.Error("Expected 'always' to log to stderr")
	}
	if shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "never"}}, logrus.DebugLevel) {
		t.Error("Expected 'never' to suppress stderr even at debug")
	}
	if !shouldLogToStderr(Config{}, logrus.DebugLevel) {
		t.Error("Expected auto mode to log to stderr at debug level")
	}
}

func TestSetGlobalOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := SetGlobalOutput(&buf)
	defer SetGlobalOutput(prev)

	if _, err := GetGlobalOutput().Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello" {
		t.Errorf("Expected write to reach redirected output, got %q", buf.String())
	}
}

func TestCaptureOutputReceivesQuietLoggers(t *testing.T) {
	var buf bytes.Buffer
	prev := SetCaptureOutput(&buf)
	defer SetCaptureOutput(prev)

	logger := newLogger("capture", Config{Level: "info", Format: FormatConfig{StructuredToStderr: "never", DisableTimestamp: true}})
	logger.Info("quiet line")

	if !strings.Contains(buf.String(), "quiet line") {
		t.Errorf("Expected capture sink to receive the entry, got %q", buf.String())
	}
}
