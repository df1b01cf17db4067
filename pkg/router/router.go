// Package router maps paths to feature modules, loads each module at most once
// and keeps track of which module is visible.
package router

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/state"
)

// FallbackModule is activated for paths missing from the table.
const FallbackModule = "dashboard"

// Module is a feature module the router can load and activate.
type Module interface {
	// Name is the module name used by the route table.
	Name() string
	// Title is the label shown in navigation.
	Title() string
	// Init runs once, the first time the module is resolved.
	Init(ctx context.Context) error
	// Render runs on every activation.
	Render(ctx context.Context) error
}

// Route maps an exact path to a module name.
type Route struct {
	Path   string
	Module string
}

// Table is the ordered route table. Order is navigation order.
type Table []Route

// DefaultTable returns the routes the application ships with. The extraction
// route has no module yet.
func DefaultTable() Table {
	return Table{
		{Path: "/", Module: "dashboard"},
		{Path: "/summarization", Module: "summarization"},
		{Path: "/extraction", Module: "extraction"},
		{Path: "/documents", Module: "documents"},
	}
}

// ModuleStyle holds per-module accent overrides read from the styles directory.
type ModuleStyle struct {
	Accent string `toml:"accent"`
	Border string `toml:"border"`
	Muted  string `toml:"muted"`
}

// NavItem is one navigation entry.
type NavItem struct {
	Path   string
	Module string
	Title  string
	Active bool
	// Available is false when no module is registered for the route.
	Available bool
}

// ErrorSink receives failures that should be shown to the user.
type ErrorSink func(err error)

// Router resolves paths to modules.
type Router struct {
	// nav serializes navigation; mu guards fields and is never held while
	// module code runs.
	nav sync.Mutex
	mu  sync.RWMutex

	table    Table
	routes   map[string]string
	fallback string
	modules  map[string]Module

	loaded  map[string]struct{}
	styles  map[string]ModuleStyle
	current string
	visible string
	active  string

	history []string
	index   int

	store     *state.Store
	sink      ErrorSink
	stylesDir string
	logger    *logrus.Entry
}

// Option configures a Router.
type Option func(*Router)

// WithTable replaces the default route table.
func WithTable(t Table) Option {
	return func(r *Router) {
		r.table = append(Table(nil), t...)
	}
}

// WithFallback changes the module used for unknown paths.
func WithFallback(name string) Option {
	return func(r *Router) {
		r.fallback = name
	}
}

// WithStore makes the router publish the current module and errors into the
// app namespace.
func WithStore(s *state.Store) Option {
	return func(r *Router) {
		r.store = s
	}
}

// WithErrorSink overrides where resolution failures are sent.
func WithErrorSink(sink ErrorSink) Option {
	return func(r *Router) {
		r.sink = sink
	}
}

// WithStylesDir sets the directory holding <module>.toml style overrides.
// An empty dir disables the style step.
func WithStylesDir(dir string) Option {
	return func(r *Router) {
		r.stylesDir = dir
	}
}

// WithLogger sets the router's logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a router. Modules are added with Register.
func New(opts ...Option) *Router {
	r := &Router{
		table:    DefaultTable(),
		fallback: FallbackModule,
		modules:  make(map[string]Module),
		loaded:   make(map[string]struct{}),
		styles:   make(map[string]ModuleStyle),
		index:    -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewLogger("router")
	}
	if r.sink == nil {
		r.sink = r.storeSink
	}
	r.routes = make(map[string]string, len(r.table))
	for i, route := range r.table {
		p := normalizePath(route.Path)
		r.table[i].Path = p
		r.routes[p] = route.Module
	}
	return r
}

// Register adds a module. A nil module or one without a name is rejected.
func (r *Router) Register(m Module) error {
	if m == nil {
		return errors.ModuleInvalid("", "module is nil")
	}
	name := m.Name()
	if name == "" {
		return errors.ModuleInvalid(fmt.Sprintf("%T", m), "module has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[name]; exists {
		return errors.ModuleInvalid(name, "module already registered")
	}
	r.modules[name] = m
	return nil
}

// Start records path as the initial location and resolves it.
func (r *Router) Start(ctx context.Context, path string) error {
	r.nav.Lock()
	defer r.nav.Unlock()

	p := normalizePath(path)
	r.mu.Lock()
	r.history = []string{p}
	r.index = 0
	r.mu.Unlock()
	return r.resolve(ctx, p)
}

// Navigate moves to path. It is a no-op when path is already the current
// location; otherwise a history entry is pushed, discarding any forward
// entries, and the route is resolved. It reports whether a resolution ran.
func (r *Router) Navigate(ctx context.Context, path string) bool {
	r.nav.Lock()
	defer r.nav.Unlock()

	p := normalizePath(path)
	r.mu.Lock()
	if r.index >= 0 && r.history[r.index] == p {
		r.mu.Unlock()
		return false
	}
	r.history = append(r.history[:r.index+1], p)
	r.index++
	r.mu.Unlock()

	_ = r.resolve(ctx, p)
	return true
}

// Back moves one entry back in history. It reports false at the oldest entry.
func (r *Router) Back(ctx context.Context) bool {
	return r.step(ctx, -1)
}

// Forward moves one entry forward in history. It reports false at the newest entry.
func (r *Router) Forward(ctx context.Context) bool {
	return r.step(ctx, 1)
}

func (r *Router) step(ctx context.Context, delta int) bool {
	r.nav.Lock()
	defer r.nav.Unlock()

	r.mu.Lock()
	next := r.index + delta
	if next < 0 || next >= len(r.history) {
		r.mu.Unlock()
		return false
	}
	r.index = next
	p := r.history[next]
	r.mu.Unlock()

	_ = r.resolve(ctx, p)
	return true
}

// Resolve looks path up, loads its module if needed and activates it. The
// returned error has already been logged and sent to the error sink.
func (r *Router) Resolve(ctx context.Context, path string) error {
	r.nav.Lock()
	defer r.nav.Unlock()
	return r.resolve(ctx, normalizePath(path))
}

// ModuleFor returns the module name path routes to, applying the fallback.
func (r *Router) ModuleFor(path string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.routes[normalizePath(path)]; ok {
		return name
	}
	return r.fallback
}

func (r *Router) resolve(ctx context.Context, path string) (err error) {
	name := r.ModuleFor(path)
	log := r.logger.WithFields(logrus.Fields{"path": path, "module": name})
	log.Debug("Resolving route")

	defer func() {
		if p := recover(); p != nil {
			err = errors.New(errors.ErrCodeInternal, fmt.Sprintf("module %s panicked: %v", name, p))
		}
		if err != nil {
			log.WithError(err).Error("Failed to load module")
			r.sink(errors.Wrap(err, errors.CodeOr(err, errors.ErrCodeInternal), "failed to load module: "+name))
		}
	}()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCancelled, "navigation cancelled")
	}

	if !r.Loaded(name) {
		r.load(ctx, name, log)
	}
	if err := r.Activate(ctx, name); err != nil {
		return err
	}

	r.mu.Lock()
	r.current = name
	r.mu.Unlock()
	if r.store != nil {
		r.store.Write(state.App, state.Fields{state.KeyCurrentModule: name})
	}
	return nil
}

// load runs the best-effort style and init steps and marks name loaded.
func (r *Router) load(ctx context.Context, name string, log *logrus.Entry) {
	log.Debug("Loading module")

	if style, ok, err := r.loadStyle(name); err != nil {
		log.WithError(err).Warn("Module style not loaded")
	} else if ok {
		r.mu.Lock()
		r.styles[name] = style
		r.mu.Unlock()
	}

	if err := r.initModule(ctx, name); err != nil {
		log.WithError(err).Warn("Module script not loaded")
	}

	r.mu.Lock()
	r.loaded[name] = struct{}{}
	r.mu.Unlock()
}

func (r *Router) loadStyle(name string) (ModuleStyle, bool, error) {
	var style ModuleStyle
	if r.stylesDir == "" {
		return style, false, nil
	}
	path := filepath.Join(r.stylesDir, name+".toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		r.logger.WithField("path", path).Debug("No style overrides for module")
		return style, false, nil
	}
	if err != nil {
		return style, false, errors.AssetLoad(name, path, err)
	}
	if err := toml.Unmarshal(data, &style); err != nil {
		return style, false, errors.AssetLoad(name, path, err)
	}
	return style, true, nil
}

func (r *Router) initModule(ctx context.Context, name string) (err error) {
	m, ok := r.module(name)
	if !ok {
		return errors.AssetLoad(name, "module", fmt.Errorf("module %q is not registered", name))
	}
	defer func() {
		if p := recover(); p != nil {
			err = errors.AssetLoad(name, "init", fmt.Errorf("panic: %v", p))
		}
	}()
	if err := m.Init(ctx); err != nil {
		return errors.AssetLoad(name, "init", err)
	}
	return nil
}

// Activate hides every module, shows name and renders it, then marks its
// navigation entry active. A name without a registered module leaves nothing
// visible and only logs a warning.
func (r *Router) Activate(ctx context.Context, name string) error {
	m, ok := r.module(name)

	r.mu.Lock()
	r.visible = ""
	if ok {
		r.visible = name
	}
	r.active = name
	r.mu.Unlock()

	if !ok {
		r.logger.WithField("module", name).Warn("No container for module")
		return nil
	}
	if err := m.Render(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "render "+name)
	}
	return nil
}

func (r *Router) module(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

func (r *Router) storeSink(err error) {
	if r.store == nil {
		return
	}
	r.store.Write(state.App, state.Fields{state.KeyError: errors.Message(err)})
}

// Current returns the module name of the last successful resolution.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Location returns the current history entry, or "" before Start.
func (r *Router) Location() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.index < 0 {
		return ""
	}
	return r.history[r.index]
}

// Loaded reports whether name has been loaded.
func (r *Router) Loaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaded[name]
	return ok
}

// Visible reports whether name is the visible module.
func (r *Router) Visible(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visible != "" && r.visible == name
}

// VisibleModule returns the visible module, if any.
func (r *Router) VisibleModule() (Module, bool) {
	r.mu.RLock()
	name := r.visible
	r.mu.RUnlock()
	if name == "" {
		return nil, false
	}
	return r.module(name)
}

// Style returns the style overrides loaded for name.
func (r *Router) Style(name string) (ModuleStyle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[name]
	return s, ok
}

// NavItems returns the navigation entries in table order.
func (r *Router) NavItems() []NavItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]NavItem, 0, len(r.table))
	for _, route := range r.table {
		item := NavItem{
			Path:   route.Path,
			Module: route.Module,
			Title:  titleCase(route.Module),
			Active: route.Module == r.active,
		}
		if m, ok := r.modules[route.Module]; ok {
			item.Title = m.Title()
			item.Available = true
		}
		items = append(items, item)
	}
	return items
}

// normalizePath ensures path has a leading slash and no trailing slash.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
