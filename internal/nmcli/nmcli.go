// Package nmcli drives NetworkManager's command-line client: listing visible
// access points, triggering an active rescan, and connecting to a network by
// profile or by BSSID.
package nmcli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scbrown/nm-dmenu/internal/model"
	"github.com/scbrown/nm-dmenu/internal/runner"
)

// ExitNoProfile is the nmcli exit status for "connection, device, or access
// point does not exist". Connect falls back to creating a profile on it.
const ExitNoProfile = 10

const (
	DefaultProgram        = "nmcli"
	DefaultRescanTimeout  = 60 * time.Second
	DefaultConnectTimeout = 30 * time.Second
)

// listFields is the field set requested from `device wifi list`. Its order
// must match the positional layout Parse expects.
const listFields = "SSID,BSSID,FREQ,SECURITY"

// State is a step of the connect state machine.
type State int

const (
	Idle State = iota
	AttemptingExisting
	AttemptingNew
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AttemptingExisting:
		return "attempting-existing"
	case AttemptingNew:
		return "attempting-new"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Credentials supplies the secret for a network that has no saved profile.
type Credentials interface {
	// Password returns the secret for n and whether one is available.
	Password(ctx context.Context, n model.Network) (string, bool)
}

// NoCredentials never has a password. Connecting to a secured network without
// a saved profile therefore relies on NetworkManager's own secret agent.
type NoCredentials struct{}

func (NoCredentials) Password(context.Context, model.Network) (string, bool) { return "", false }

// Client runs nmcli through a runner.Runner.
type Client struct {
	Runner         runner.Runner
	Program        string
	RescanTimeout  time.Duration
	ConnectTimeout time.Duration
	Credentials    Credentials
	Logger         *slog.Logger
}

// New returns a Client with the default program name and timeouts.
func New(r runner.Runner, logger *slog.Logger) *Client {
	return &Client{
		Runner:         r,
		Program:        DefaultProgram,
		RescanTimeout:  DefaultRescanTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		Credentials:    NoCredentials{},
		Logger:         logger,
	}
}

func (c *Client) run(ctx context.Context, timeout time.Duration, args ...string) (runner.Result, error) {
	cmd := runner.Cmd{Name: c.Program, Args: args, Timeout: timeout}
	c.logger().Debug("running nmcli", "cmd", cmd.String(), "timeout", timeout)
	return c.Runner.Run(ctx, cmd)
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// ListRaw returns the cached access point list in multiline get-values form.
func (c *Client) ListRaw(ctx context.Context) (string, error) {
	res, err := c.run(ctx, 0, "-g", listFields, "--mode", "multiline", "device", "wifi", "list", "--rescan", "no")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// List returns the cached access point list without triggering a rescan.
func (c *Client) List(ctx context.Context) ([]model.Network, error) {
	out, err := c.ListRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(out)
}

// Rescan asks NetworkManager for an active scan and waits until the list is
// refreshed. Its output is discarded.
func (c *Client) Rescan(ctx context.Context) error {
	_, err := c.run(ctx, c.RescanTimeout, "device", "wifi", "list", "--rescan", "yes")
	return err
}

// Up activates the saved connection profile named ssid.
func (c *Client) Up(ctx context.Context, ssid string) error {
	_, err := c.run(ctx, c.ConnectTimeout, "connection", "up", ssid)
	return err
}

// ConnectNew connects to the access point n.BSSID, creating a new profile.
// A password argument is added only when n is secured and Credentials has one.
func (c *Client) ConnectNew(ctx context.Context, n model.Network) error {
	args := []string{"device", "wifi", "connect", n.BSSID}
	if n.Secured() && c.Credentials != nil {
		if pw, ok := c.Credentials.Password(ctx, n); ok {
			args = append(args, "password", pw)
		}
	}
	_, err := c.run(ctx, c.ConnectTimeout, args...)
	return err
}

// Connect brings up the saved profile for n and, if nmcli reports that no such
// profile exists, connects by BSSID instead. It returns the terminal state.
func (c *Client) Connect(ctx context.Context, n model.Network) (State, error) {
	log := c.logger().With("ssid", n.SSID, "bssid", n.BSSID)

	log.Debug("connect", "state", AttemptingExisting)
	err := c.Up(ctx, n.SSID)
	if err == nil {
		log.Debug("connect", "state", Connected)
		return Connected, nil
	}
	if runner.ExitCode(err) != ExitNoProfile {
		log.Debug("connect", "state", Failed, "error", err)
		return Failed, err
	}

	log.Debug("connect", "state", AttemptingNew)
	if err := c.ConnectNew(ctx, n); err != nil {
		log.Debug("connect", "state", Failed, "error", err)
		return Failed, err
	}
	log.Debug("connect", "state", Connected)
	return Connected, nil
}
