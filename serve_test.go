package main

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return cmd
}

func TestResolveConfig(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("HOST", "")

	t.Run("Environment only", func(t *testing.T) {
		cfg, err := resolveConfig(newFlagCmd(t))
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Port != 4000 {
			t.Errorf("Port = %d, want 4000", cfg.Port)
		}
		if cfg.Host != "0.0.0.0" {
			t.Errorf("Host = %q, want 0.0.0.0", cfg.Host)
		}
	})

	t.Run("Flags override environment", func(t *testing.T) {
		cfg, err := resolveConfig(newFlagCmd(t, "--port", "9090", "--host", "127.0.0.1"))
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Port != 9090 {
			t.Errorf("Port = %d, want 9090", cfg.Port)
		}
		if cfg.Host != "127.0.0.1" {
			t.Errorf("Host = %q, want 127.0.0.1", cfg.Host)
		}
	})

	t.Run("Invalid port flag", func(t *testing.T) {
		if _, err := resolveConfig(newFlagCmd(t, "-p", "70000")); err == nil {
			t.Error("Expected error for --port 70000")
		}
	})

	t.Run("Config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.yaml")
		if err := os.WriteFile(path, []byte("environment: qa\n"), 0o600); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("ENV", "")
		os.Unsetenv("ENV")
		t.Setenv("NODE_ENV", "")
		os.Unsetenv("NODE_ENV")

		cfg, err := resolveConfig(newFlagCmd(t, "-c", path))
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Environment == nil || *cfg.Environment != "qa" {
			t.Errorf("Expected environment qa, got %v", cfg.Environment)
		}
	})

	t.Run("Missing config file", func(t *testing.T) {
		if _, err := resolveConfig(newFlagCmd(t, "-c", "/does/not/exist.yaml")); err == nil {
			t.Error("Expected error for missing config file")
		}
	})
}

func TestRunServePortInUse(t *testing.T) {
	// A first instance already holds the port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	t.Setenv("HEARTBEAT_SCHEDULE", "")
	cmd := newFlagCmd(t, "--host", "127.0.0.1", "--port", port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runServe(cmd, nil)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("Expected runServe to fail when the port is taken")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServe did not return on a port in use")
	}
}

func TestRootCommandSilencesErrors(t *testing.T) {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		if !cmd.SilenceErrors {
			t.Errorf("%s: expected SilenceErrors so failures are logged once", cmd.Name())
		}
	}
}

func TestDerefOr(t *testing.T) {
	val := "prod"
	if got := derefOr(&val, "x"); got != "prod" {
		t.Errorf("derefOr() = %q, want prod", got)
	}
	if got := derefOr(nil, "x"); got != "x" {
		t.Errorf("derefOr(nil) = %q, want x", got)
	}
}
