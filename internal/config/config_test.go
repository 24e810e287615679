package config

import (
	"reflect"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(env(nil))
	if cfg.MenuProgram != "dmenu" {
		t.Errorf("MenuProgram = %q, want dmenu", cfg.MenuProgram)
	}
	if cfg.NmcliProgram != "nmcli" {
		t.Errorf("NmcliProgram = %q, want nmcli", cfg.NmcliProgram)
	}
	if len(cfg.MenuArgs) != 0 {
		t.Errorf("MenuArgs = %q, want none", cfg.MenuArgs)
	}
	if cfg.RescanTimeout != 60*time.Second {
		t.Errorf("RescanTimeout = %v, want 60s", cfg.RescanTimeout)
	}
	if cfg.ConnectTimeout != 30*time.Second {
		t.Errorf("ConnectTimeout = %v, want 30s", cfg.ConnectTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadMenuArgs(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"-i", []string{"-i"}},
		{"-i -l 10", []string{"-i", "-l", "10"}},
		{"  -fn\tmono \n -nb #000 ", []string{"-fn", "mono", "-nb", "#000"}},
	}
	for _, tt := range tests {
		cfg := Load(env(map[string]string{EnvMenuOpts: tt.value}))
		if len(tt.want) == 0 && len(cfg.MenuArgs) == 0 {
			continue
		}
		if !reflect.DeepEqual(cfg.MenuArgs, tt.want) {
			t.Errorf("%s=%q: MenuArgs = %q, want %q", EnvMenuOpts, tt.value, cfg.MenuArgs, tt.want)
		}
	}
}

func TestLoadLogLevel(t *testing.T) {
	cfg := Load(env(map[string]string{EnvLogLevel: " DEBUG "}))
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadProcessEnv(t *testing.T) {
	t.Setenv(EnvMenuOpts, "-b -i")
	cfg := Load(nil)
	if !reflect.DeepEqual(cfg.MenuArgs, []string{"-b", "-i"}) {
		t.Errorf("MenuArgs = %q", cfg.MenuArgs)
	}
}
