// file: cmd/root_test.go
// version: 2.0.0
// guid: 7eae8d0c-7fda-4f45-8f73-5d1e0c7c9f1a

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acikyardim/yardim-paneli/internal/config"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "import", "version", "diagnostics"} {
		if !names[want] {
			t.Fatalf("expected %q command to be registered", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "1.2.3"

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	if !strings.Contains(out.String(), "yardim-paneli 1.2.3") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestInitConfigDefaults(t *testing.T) {
	origCfgFile := cfgFile
	origConfig := config.AppConfig
	defer func() {
		cfgFile = origCfgFile
		config.AppConfig = origConfig
	}()

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	initConfig()

	if config.AppConfig.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", config.AppConfig.Port)
	}
	if config.AppConfig.DatabaseType != "sqlite" {
		t.Fatalf("expected default sqlite, got %q", config.AppConfig.DatabaseType)
	}
	if config.AppConfig.SMSProvider != "mock" {
		t.Fatalf("expected mock sms provider, got %q", config.AppConfig.SMSProvider)
	}
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"port", "host", "read-timeout", "write-timeout", "idle-timeout"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected serve flag %q", name)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("kisa", 10); got != "kisa" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	long := strings.Repeat("a", 20)
	if got := truncateString(long, 10); got != long[:10]+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
