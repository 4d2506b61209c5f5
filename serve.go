package main

import (
	"fmt"
	"platform_api/config"
	"platform_api/heartbeat"
	"platform_api/shutdown"
	"platform_api/web"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		logger.LogErr(err, "Failed to load configuration")
		return err
	}

	done := make(chan struct{}) // closed when shutdown completes
	shutdown.InitShutdownService(done)

	if cfg.HeartbeatSchedule != "" {
		hb, err := heartbeat.Start(cfg.HeartbeatSchedule)
		if err != nil {
			logger.LogErr(err, "Failed to start heartbeat")
			return err
		}
		shutdown.RegisterHook(hb.Stop)
	}

	logger.Info("Configuration loaded",
		"address", cfg.Address(),
		"environment", derefOr(cfg.Environment, "(unset)"),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- web.StartWebServer(cfg)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.LogErr(err, "Server failed to start")
			return err
		}
		// server returned on its own signal handling; let hooks finish
		<-done
	case <-done:
	}

	logger.Info("Server exited")
	return nil
}

// resolveConfig layers command line flags over file and environment config
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		if !config.ValidPort(port) {
			return cfg, serr.New(fmt.Sprintf("invalid --port %d", port))
		}
		cfg.Port = port
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}

	return cfg, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
