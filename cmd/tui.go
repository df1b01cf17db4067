package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/bootstrap"
	"github.com/grovetools/llmcompare/pkg/modules/dashboard"
	"github.com/grovetools/llmcompare/pkg/modules/documents"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/pkg/paths"
	"github.com/grovetools/llmcompare/pkg/router"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui"
	"github.com/grovetools/llmcompare/tui/app"
	"github.com/grovetools/llmcompare/tui/keymap"
	"github.com/grovetools/llmcompare/tui/theme"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive comparison TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			return runTUI(cmd, start)
		},
	}
	cmd.Flags().String("start", "", "Route to open first: /, /summarization, /extraction or /documents")
	return cmd
}

func runTUI(cmd *cobra.Command, startPath string) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	kc, err := keymap.LoadConfig(e.cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid keybindings section")
	}
	if e.cfg.TUI.Icons == "ascii" {
		theme.SetASCII(true)
	}
	if startPath == "" {
		startPath = e.cfg.TUI.StartPath
	}

	store := state.New(state.WithLogger(logging.NewLogger("state")))
	bootstrap.Seed(store, e.cfg)

	r := router.New(
		router.WithStore(store),
		router.WithStylesDir(paths.StylesDir()),
		router.WithLogger(logging.NewLogger("router")),
	)
	views := []app.View{
		dashboard.New(e.client, store, dashboard.WithContext(ctx), dashboard.WithKeyConfig(kc)),
		summarization.New(e.client, store, summarization.WithContext(ctx), summarization.WithKeyConfig(kc)),
		documents.New(e.client, store, documents.WithContext(ctx), documents.WithKeyConfig(kc)),
	}
	for _, v := range views {
		if err := r.Register(v); err != nil {
			return err
		}
	}

	go func() {
		if err := bootstrap.Load(ctx, e.client, store, logging.NewLogger("bootstrap")); err != nil {
			store.Write(state.App, state.Fields{state.KeyError: "Could not load backend configuration: " + errors.Message(err)})
		}
	}()

	if cwd, err := os.Getwd(); err == nil {
		w, err := config.NewWatcher(cwd, config.DefaultDebounce, logging.NewLogger("config"), func(cfg *config.Config, err error) {
			onConfigReload(store, cfg, err)
		})
		if err != nil {
			e.logger.WithError(err).Warn("Config hot reload disabled")
		} else {
			defer w.Close()
			go w.Start(ctx)
		}
	}

	model := app.New(ctx, r, store, views, app.WithStartPath(startPath), app.WithKeyConfig(kc))
	defer model.Close()

	_, err = tui.Run(ctx, model)
	return err
}

// onConfigReload applies a reloaded configuration's defaults to the store.
// A file that no longer parses leaves the store as it was.
func onConfigReload(store *state.Store, cfg *config.Config, err error) {
	if err != nil {
		store.Write(state.App, state.Fields{state.KeyError: "Configuration reload failed: " + errors.Message(err)})
		return
	}
	bootstrap.Seed(store, cfg)
	store.Write(state.App, state.Fields{state.KeyConfigReloadedAt: time.Now()})
}
