package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scbrown/nm-dmenu/internal/config"
	"github.com/scbrown/nm-dmenu/internal/label"
	"github.com/scbrown/nm-dmenu/internal/menu"
	"github.com/scbrown/nm-dmenu/internal/model"
	"github.com/scbrown/nm-dmenu/internal/nmcli"
	"github.com/scbrown/nm-dmenu/internal/notify"
	"github.com/scbrown/nm-dmenu/internal/runner"
)

// Messages shown to the user as notifications.
const (
	msgRescanDone = "Network scan complete"
	msgConnected  = "Successfully connected to %s."
)

type networkManager interface {
	List(ctx context.Context) ([]model.Network, error)
	Rescan(ctx context.Context) error
	Connect(ctx context.Context, n model.Network) (nmcli.State, error)
}

type chooser interface {
	Choose(ctx context.Context, entries []string) (string, error)
}

// app is one run of the scan, choose, dispatch pipeline.
type app struct {
	nm     networkManager
	menu   chooser
	logger *slog.Logger
	stderr io.Writer

	newNotifier func(*slog.Logger) notify.Notifier
	// notifier is nil until run starts, so errors raised before the
	// pipeline (usage errors) are never sent as notifications.
	notifier notify.Notifier

	progress func(msg string) (stop func())
}

// appFactory builds the pipeline Execute runs, settable for testing.
var appFactory = func(cfg config.Config, logger *slog.Logger) *app {
	return newApp(cfg, logger, runner.Exec{})
}

func newApp(cfg config.Config, logger *slog.Logger, r runner.Runner) *app {
	nm := nmcli.New(r, logger)
	nm.Program = cfg.NmcliProgram
	nm.RescanTimeout = cfg.RescanTimeout
	nm.ConnectTimeout = cfg.ConnectTimeout

	return &app{
		nm:          nm,
		menu:        &menu.Dmenu{Runner: r, Program: cfg.MenuProgram, Args: cfg.MenuArgs},
		logger:      logger,
		stderr:      os.Stderr,
		newNotifier: notify.New,
		progress: func(msg string) func() {
			return startProgress(os.Stderr, msg)
		},
	}
}

func (a *app) run(ctx context.Context) error {
	a.notifier = a.newNotifier(a.logger)

	nets, err := a.nm.List(ctx)
	if err != nil {
		return err
	}
	label.Assign(nets)
	label.Sort(nets)
	a.logger.Debug("scan listed", "networks", len(nets))

	sel, err := a.menu.Choose(ctx, label.Labels(nets))
	if err != nil {
		return err
	}
	return a.dispatch(ctx, sel, nets)
}

// dispatch acts on the menu selection: the rescan entry rescans, anything
// else must name a network to connect to.
func (a *app) dispatch(ctx context.Context, sel string, nets []model.Network) error {
	if sel == model.RescanLabel {
		return a.rescan(ctx)
	}
	n, err := label.Lookup(sel, nets)
	switch {
	case errors.Is(err, label.ErrRescan):
		return a.rescan(ctx)
	case err != nil:
		return fmt.Errorf("%w: %q", err, sel)
	}
	return a.connect(ctx, n)
}

func (a *app) rescan(ctx context.Context) error {
	stop := a.progress("Scanning for networks...")
	err := a.nm.Rescan(ctx)
	stop()
	if err != nil {
		return err
	}
	a.notifier.Notify(msgRescanDone)
	return nil
}

func (a *app) connect(ctx context.Context, n model.Network) error {
	stop := a.progress("Connecting to " + n.SSID + "...")
	state, err := a.nm.Connect(ctx, n)
	stop()
	if err != nil {
		return err
	}
	a.logger.Info("connected", "ssid", n.SSID, "state", state)
	a.notifier.Notify(fmt.Sprintf(msgConnected, n.SSID))
	return nil
}

// report turns the outcome of a run into an exit status. A dismissed menu
// exits with the menu's status and says nothing. Any other error goes to
// stderr and, once the pipeline has started, to a notification.
func (a *app) report(err error) int {
	if err == nil {
		return 0
	}
	var ce *menu.CancelledError
	if errors.As(err, &ce) {
		return ce.Code
	}
	msg := err.Error()
	if a.notifier != nil {
		a.notifier.Notify(msg)
	}
	fmt.Fprintln(a.stderr, msg)
	return 1
}

func (a *app) close() {
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			a.logger.Debug("close notifier", "error", err)
		}
	}
}
