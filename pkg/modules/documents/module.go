// Package documents uploads local files to the backend and lists what was
// sent during the session.
package documents

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/util/pathutil"
)

// Name is the module's route table name.
const Name = "documents"

// User-facing messages.
const (
	MsgNoPath        = "Please enter a file path"
	MsgAlreadyActive = "This file is already being uploaded"
	uploadPrefix     = "Error uploading document: "
)

// Client is the part of the backend API the module uses.
type Client interface {
	UploadDocument(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
}

// Upload is one finished upload kept in documents.results.
type Upload struct {
	Path     string
	Filename string
	Size     int64
	Status   string
	Message  string
	At       time.Time
}

// Module implements the documents page.
type Module struct {
	client Client
	store  *state.Store
	logger *logrus.Entry
	now    func() time.Time
	ctx    context.Context
	keys   keymap.Config

	ui *ui
}

// Option configures a Module.
type Option func(*Module)

// WithLogger overrides the module logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Module) { m.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// WithContext bounds uploads started from the TUI.
func WithContext(ctx context.Context) Option {
	return func(m *Module) { m.ctx = ctx }
}

// WithKeyConfig applies keybinding overrides to the page.
func WithKeyConfig(kc keymap.Config) Option {
	return func(m *Module) { m.keys = kc }
}

// New creates the documents module.
func New(client Client, store *state.Store, opts ...Option) *Module {
	m := &Module{
		client: client,
		store:  store,
		now:    time.Now,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewLogger(Name)
	}
	m.ui = newUI(m)
	return m
}

func (m *Module) Name() string  { return Name }
func (m *Module) Title() string { return "Documents" }

func (m *Module) Init(ctx context.Context) error   { return nil }
func (m *Module) Render(ctx context.Context) error { return nil }

// Uploads returns the finished uploads, oldest first.
func (m *Module) Uploads() []Upload {
	return state.ValueOr(m.store.ReadModule(state.Documents), state.KeyResults, []Upload(nil))
}

// Processing returns the files currently being uploaded.
func (m *Module) Processing() []string {
	return state.ValueOr(m.store.ReadModule(state.Documents), state.KeyProcessingFiles, []string(nil))
}

// Upload sends the file at path to the backend. The path may use ~ and
// environment variables. Failures are written to app.error and returned.
func (m *Module) Upload(ctx context.Context, path string) (*models.UploadResponse, error) {
	resolved, info, err := m.resolve(path)
	if err != nil {
		m.showError(errors.Message(err))
		return nil, err
	}
	if slices.Contains(m.Processing(), resolved) {
		err := errors.Validation("path", MsgAlreadyActive).WithDetail("path", resolved)
		m.showError(MsgAlreadyActive)
		return nil, err
	}

	log := m.logger.WithFields(logrus.Fields{"path": resolved, "size": info.Size()})
	m.setProcessing(resolved, true)
	m.store.Write(state.App, state.Fields{state.KeyLoading: true, state.KeyError: nil})
	defer func() {
		m.setProcessing(resolved, false)
		m.store.Write(state.App, state.Fields{state.KeyLoading: false})
	}()

	f, err := os.Open(resolved)
	if err != nil {
		err = errors.Wrap(err, errors.ErrCodeValidation, "Cannot read file: "+resolved)
		m.showError(errors.Message(err))
		return nil, err
	}
	defer f.Close()

	log.Info("Uploading document")
	resp, err := m.client.UploadDocument(ctx, filepath.Base(resolved), f)
	if err != nil {
		log.WithError(err).Warn("Upload failed")
		m.showError(uploadPrefix + errors.Message(err))
		return nil, errors.Wrap(err, errors.CodeOr(err, errors.ErrCodeTransport), uploadPrefix+errors.Message(err))
	}

	record := Upload{
		Path:     resolved,
		Filename: resp.Filename,
		Size:     resp.Size,
		Status:   resp.Status,
		Message:  resp.Message,
		At:       m.now(),
	}
	if record.Size == 0 {
		record.Size = info.Size()
	}
	if record.Status == "" {
		record.Status = "uploaded"
	}

	fields := m.store.ReadModule(state.Documents)
	uploaded := state.ValueOr(fields, state.KeyUploadedFiles, []string(nil))
	results := state.ValueOr(fields, state.KeyResults, []Upload(nil))
	m.store.Write(state.Documents, state.Fields{
		state.KeyUploadedFiles: append(slices.Clone(uploaded), record.Filename),
		state.KeyResults:       append(slices.Clone(results), record),
	})
	log.WithField("filename", record.Filename).Info("Document uploaded")
	return resp, nil
}

// resolve expands path and checks that it names a regular file.
func (m *Module) resolve(path string) (string, os.FileInfo, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil, errors.Validation("path", MsgNoPath)
	}
	resolved, err := pathutil.Expand(path)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeValidation, "Invalid path: "+path)
	}
	info, err := os.Stat(resolved)
	switch {
	case os.IsNotExist(err):
		return "", nil, errors.Validation("path", "File not found: "+resolved)
	case err != nil:
		return "", nil, errors.Wrap(err, errors.ErrCodeValidation, "Cannot read file: "+resolved)
	case info.IsDir():
		return "", nil, errors.Validation("path", "Not a file: "+resolved)
	}
	return resolved, info, nil
}

// setProcessing adds or removes path from documents.processingFiles.
func (m *Module) setProcessing(path string, active bool) {
	current := m.Processing()
	next := slices.DeleteFunc(slices.Clone(current), func(p string) bool { return p == path })
	if active {
		next = append(next, path)
	}
	m.store.Write(state.Documents, state.Fields{state.KeyProcessingFiles: next})
}

func (m *Module) showError(msg string) {
	m.store.Write(state.App, state.Fields{state.KeyError: msg})
}
