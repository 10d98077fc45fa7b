package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelssim/soundbuddy/internal/config"
	"github.com/michaelssim/soundbuddy/internal/platform/tui"
)

var (
	flagSSHAddr    string
	flagSSHHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the metronome over SSH",
	Long: `Start an SSH server that serves the metronome screen. Beats ring the
client's terminal bell. One session runs at a time; a second connection
is refused until the first one leaves.

Connect with:
  ssh -p 23235 localhost

Examples:
  soundbuddy serve
  soundbuddy serve --ssh :2222
  soundbuddy serve --host-key ~/.ssh/soundbuddy_key`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagSSHHostKey, "host-key", "", "Path to SSH host key (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg).WithPrefix("soundbuddy-ssh")

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = cfg.SSH.Address
	sshCfg.HostKeyPath = config.ExpandHome(cfg.SSH.HostKey)
	sshCfg.IdleTimeout = cfg.IdleTimeout()
	sshCfg.Bounds = cfg.Bounds()
	sshCfg.Initial = cfg.Tempo.Initial
	sshCfg.Step = cfg.Tempo.Step
	sshCfg.Recorder = recorder(store)
	sshCfg.Logger = logger

	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagSSHHostKey != "" {
		sshCfg.HostKeyPath = flagSSHHostKey
	}

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		logger.Error("cannot create SSH server", "error", err)
		fatalf("Error: %v", err)
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		fatalf("Error: %v", err)
	}
}
