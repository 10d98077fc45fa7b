package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServerExpandsHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = "~/keys/host_key"
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	want := filepath.Join(home, "keys", "host_key")
	if got := srv.HostKeyPath(); got != want {
		t.Errorf("HostKeyPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("host key directory not created under HOME: %v", err)
	}
	if _, err := os.Stat(filepath.Join(".", "~")); err == nil {
		t.Error("a literal ~ directory was created")
	}
}

func TestSingleSessionGuardStartsFree(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Busy() {
		t.Error("new server should not report a busy session")
	}
}
