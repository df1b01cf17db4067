package router

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/testutil"
)

type fakeModule struct {
	name      string
	inits     int
	renders   int
	initErr   error
	renderErr error
	panicInit bool
}

func (m *fakeModule) Name() string  { return m.name }
func (m *fakeModule) Title() string { return "Title " + m.name }

func (m *fakeModule) Init(context.Context) error {
	m.inits++
	if m.panicInit {
		panic("boom")
	}
	return m.initErr
}

func (m *fakeModule) Render(context.Context) error {
	m.renders++
	return m.renderErr
}

type harness struct {
	router  *Router
	store   *state.Store
	modules map[string]*fakeModule
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		store:   state.New(state.WithLogger(testutil.DiscardLogger())),
		modules: map[string]*fakeModule{},
	}
	opts = append([]Option{WithStore(h.store), WithLogger(testutil.DiscardLogger())}, opts...)
	h.router = New(opts...)
	for _, name := range []string{"dashboard", "summarization", "documents"} {
		m := &fakeModule{name: name}
		h.modules[name] = m
		require.NoError(t, h.router.Register(m))
	}
	return h
}

func TestNavigateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.router.Start(ctx, "/"))

	assert.True(t, h.router.Navigate(ctx, "/summarization"))
	assert.False(t, h.router.Navigate(ctx, "/summarization"))
	assert.False(t, h.router.Navigate(ctx, "/summarization/"), "trailing slash is the same location")

	assert.Equal(t, 1, h.modules["summarization"].renders)
	assert.Equal(t, "/summarization", h.router.Location())
	assert.Equal(t, "summarization", h.router.Current())
}

func TestModuleLoadsOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.router.Start(ctx, "/"))

	for i := 0; i < 3; i++ {
		h.router.Navigate(ctx, "/summarization")
		h.router.Navigate(ctx, "/documents")
	}

	assert.Equal(t, 1, h.modules["summarization"].inits)
	assert.Equal(t, 1, h.modules["documents"].inits)
	assert.Equal(t, 1, h.modules["dashboard"].inits)
	assert.Equal(t, 3, h.modules["summarization"].renders)
	assert.True(t, h.router.Loaded("documents"))
}

func TestUnknownPathFallsBack(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.router.Start(ctx, "/no/such/page"))

	assert.Equal(t, "dashboard", h.router.Current())
	assert.True(t, h.router.Visible("dashboard"))
	assert.Equal(t, "/no/such/page", h.router.Location())
	assert.Equal(t, "dashboard", h.store.ReadModule(state.App)[state.KeyCurrentModule])
}

func TestMissingModuleIsNotFatal(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.router.Start(ctx, "/"))

	assert.True(t, h.router.Navigate(ctx, "/extraction"))

	assert.True(t, h.router.Loaded("extraction"), "load is recorded even when the script step fails")
	assert.False(t, h.router.Visible("dashboard"))
	assert.False(t, h.router.Visible("extraction"))
	_, ok := h.router.VisibleModule()
	assert.False(t, ok)
	assert.Nil(t, h.store.ReadModule(state.App)[state.KeyError])

	// Still usable afterwards.
	assert.True(t, h.router.Navigate(ctx, "/summarization"))
	assert.True(t, h.router.Visible("summarization"))
}

func TestInitFailureIsAWarning(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.modules["summarization"].initErr = fmt.Errorf("no catalog")
	h.modules["documents"].panicInit = true

	require.NoError(t, h.router.Start(ctx, "/summarization"))
	assert.True(t, h.router.Visible("summarization"))
	assert.True(t, h.router.Navigate(ctx, "/documents"))
	assert.True(t, h.router.Visible("documents"))
	assert.Nil(t, h.store.ReadModule(state.App)[state.KeyError])
}

func TestRenderFailureReachesErrorSink(t *testing.T) {
	ctx := context.Background()
	var sunk []error
	h := newHarness(t, WithErrorSink(func(err error) { sunk = append(sunk, err) }))
	h.modules["documents"].renderErr = fmt.Errorf("template broke")

	require.NoError(t, h.router.Start(ctx, "/"))
	err := h.router.Resolve(ctx, "/documents")

	require.Error(t, err)
	require.Len(t, sunk, 1)
	assert.Equal(t, "failed to load module: documents", errors.Message(sunk[0]))
	assert.Equal(t, "dashboard", h.router.Current(), "current is unchanged by a failed resolution")

	h.modules["documents"].renderErr = nil
	assert.NoError(t, h.router.Resolve(ctx, "/documents"))
	assert.Equal(t, "documents", h.router.Current())
}

func TestDefaultErrorSinkWritesAppError(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.modules["summarization"].renderErr = fmt.Errorf("template broke")

	require.NoError(t, h.router.Start(ctx, "/"))
	h.router.Navigate(ctx, "/summarization")

	assert.Equal(t, "failed to load module: summarization", h.store.ReadModule(state.App)[state.KeyError])
}

func TestCancelledContext(t *testing.T) {
	h := newHarness(t, WithErrorSink(func(error) {}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.router.Start(ctx, "/")
	assert.True(t, errors.Is(err, errors.ErrCodeCancelled))
	assert.Equal(t, 0, h.modules["dashboard"].inits)
}

func TestBackForward(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.router.Start(ctx, "/"))
	h.router.Navigate(ctx, "/summarization")
	h.router.Navigate(ctx, "/documents")

	assert.True(t, h.router.Back(ctx))
	assert.Equal(t, "/summarization", h.router.Location())
	assert.Equal(t, "summarization", h.router.Current())

	assert.True(t, h.router.Back(ctx))
	assert.False(t, h.router.Back(ctx))
	assert.Equal(t, "dashboard", h.router.Current())

	assert.True(t, h.router.Forward(ctx))
	assert.Equal(t, "summarization", h.router.Current())

	t.Run("navigate drops forward entries", func(t *testing.T) {
		h.router.Navigate(ctx, "/extraction")
		assert.False(t, h.router.Forward(ctx))
		assert.True(t, h.router.Back(ctx))
		assert.Equal(t, "/summarization", h.router.Location())
	})

	assert.Equal(t, 1, h.modules["summarization"].inits)
}

func TestNavItems(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.router.Start(ctx, "/documents"))

	items := h.router.NavItems()
	require.Len(t, items, 4)
	assert.Equal(t, NavItem{Path: "/", Module: "dashboard", Title: "Title dashboard", Available: true}, items[0])
	assert.Equal(t, NavItem{Path: "/extraction", Module: "extraction", Title: "Extraction"}, items[2])
	assert.True(t, items[3].Active)

	var active int
	for _, item := range items {
		if item.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestStyleOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summarization.toml"), []byte("accent = \"#7E9CD8\"\nborder = \"8\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documents.toml"), []byte("accent = [broken"), 0o644))

	ctx := context.Background()
	h := newHarness(t, WithStylesDir(dir))
	require.NoError(t, h.router.Start(ctx, "/summarization"))
	h.router.Navigate(ctx, "/documents")
	h.router.Navigate(ctx, "/")

	style, ok := h.router.Style("summarization")
	require.True(t, ok)
	assert.Equal(t, ModuleStyle{Accent: "#7E9CD8", Border: "8"}, style)

	_, ok = h.router.Style("documents")
	assert.False(t, ok, "malformed style file is skipped")
	assert.True(t, h.router.Visible("dashboard"))

	_, ok = h.router.Style("dashboard")
	assert.False(t, ok, "missing style file is skipped")
}

func TestRegisterRejectsInvalidModules(t *testing.T) {
	r := New(WithLogger(testutil.DiscardLogger()))

	tests := []struct {
		name   string
		module Module
	}{
		{"nil", nil},
		{"unnamed", &fakeModule{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.module)
			assert.True(t, errors.Is(err, errors.ErrCodeModuleInvalid))
		})
	}

	require.NoError(t, r.Register(&fakeModule{name: "dashboard"}))
	assert.True(t, errors.Is(r.Register(&fakeModule{name: "dashboard"}), errors.ErrCodeModuleInvalid))
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":              "/",
		"/":             "/",
		"summarization": "/summarization",
		"/documents/":   "/documents",
		"/a/b":          "/a/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizePath(in), "input %q", in)
	}
}
