//go:build integration

// Package integration provides end-to-end tests that exercise the compiled
// nm-dmenu binary. Tests in this package are excluded from normal
// `go test ./...` runs and require the build tag:
// go test -tags integration ./internal/integration/
//
// TestMain builds the binary once into a temporary directory. Each test creates
// an isolated env whose PATH starts with fake nmcli and dmenu scripts. The
// fakes log their arguments and answer from files the test writes.
package integration

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// nmBin holds the path to the compiled nm-dmenu binary, set once in TestMain.
var nmBin string

// TestMain builds the nm-dmenu binary and runs all integration tests.
func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "nm-dmenu-integration-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration: create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmp)

	bin := filepath.Join(tmp, "nm-dmenu")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/nm-dmenu")
	cmd.Dir = modRoot()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "integration: build nm-dmenu binary: %v\n", err)
		os.Exit(1)
	}

	nmBin = bin
	os.Exit(m.Run())
}

// modRoot returns the module root directory by walking up from the working
// directory until go.mod is found.
func modRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("integration: getwd: %v", err))
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("integration: could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

// Fake nmcli. Every invocation is appended to $FAKE_DIR/calls. The listing
// prints $FAKE_DIR/list; `connection up` and `device wifi connect` exit with
// the codes stored in $FAKE_DIR/up_code and $FAKE_DIR/new_code.
const fakeNmcli = `#!/bin/sh
echo "nmcli $*" >> "$FAKE_DIR/calls"
code() { if [ -f "$FAKE_DIR/$1" ]; then cat "$FAKE_DIR/$1"; else echo 0; fi; }
case "$*" in
  *"--rescan no"*) cat "$FAKE_DIR/list"; exit "$(code list_code)" ;;
  *"--rescan yes"*) echo "IN-USE  BSSID  SSID"; exit "$(code rescan_code)" ;;
  "connection up "*) c=$(code up_code); [ "$c" = 0 ] || echo "Error: unknown connection '$3'." >&2; exit "$c" ;;
  "device wifi connect "*) c=$(code new_code); [ "$c" = 0 ] || echo "Error: No network with SSID '$4' found." >&2; exit "$c" ;;
esac
echo "unexpected nmcli call: $*" >&2
exit 2
`

// Fake dmenu. It stores its stdin in $FAKE_DIR/menu_input, prints the
// contents of $FAKE_DIR/selection and exits with $FAKE_DIR/menu_code.
const fakeDmenu = `#!/bin/sh
echo "dmenu $*" >> "$FAKE_DIR/calls"
cat > "$FAKE_DIR/menu_input"
code=0
[ -f "$FAKE_DIR/menu_code" ] && code=$(cat "$FAKE_DIR/menu_code")
[ "$code" = 0 ] && cat "$FAKE_DIR/selection"
exit "$code"
`

// env is an isolated test environment with its own fake tools.
type env struct {
	t     *testing.T
	dir   string // FAKE_DIR: fake tool state and call log
	bin   string // directory prepended to PATH
	extra []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{t: t, dir: filepath.Join(root, "state"), bin: filepath.Join(root, "bin")}
	for _, d := range []string{e.dir, e.bin} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}
	e.writeTool("nmcli", fakeNmcli)
	e.writeTool("dmenu", fakeDmenu)
	e.write("list", "")
	return e
}

func (e *env) writeTool(name, script string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.bin, name), []byte(script), 0o755); err != nil {
		e.t.Fatalf("write fake %s: %v", name, err)
	}
}

// write stores content in the fake state directory.
func (e *env) write(name, content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
}

func (e *env) read(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		e.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// calls returns every fake tool invocation in order.
func (e *env) calls() []string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, "calls"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("read calls: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// run executes nm-dmenu in the environment and returns stdout, stderr, and the
// exit code.
func (e *env) run(args ...string) (stdout, stderr string, code int) {
	e.t.Helper()
	cmd := exec.Command(nmBin, args...)
	cmd.Env = append(os.Environ(),
		"PATH="+e.bin+string(os.PathListSeparator)+"/usr/bin:/bin",
		"FAKE_DIR="+e.dir,
		"DBUS_SESSION_BUS_ADDRESS=unix:path="+filepath.Join(e.dir, "no-bus"),
		"NM_DMENU_LOG_LEVEL=error",
		"DMENU_DEFAULT_OPS=",
	)
	cmd.Env = append(cmd.Env, e.extra...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

const scanFixture = `SSID:home
BSSID:AA:BB:CC:DD:EE:FF
FREQ:2437 MHz
SECURITY:WPA2
SSID:cafe
BSSID:11:22:33:44:55:66
FREQ:2412 MHz
SECURITY:
SSID:cafe
BSSID:11:22:33:44:55:67
FREQ:2412 MHz
SECURITY:
`
