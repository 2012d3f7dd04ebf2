package main

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/bench-viewer/internal/router"
	"github.com/DjordjeVuckovic/bench-viewer/internal/server"
	pkgserver "github.com/DjordjeVuckovic/bench-viewer/pkg/server"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const keyOpen = "open"

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <data_path>",
		Short: "Index the runs under data_path and serve the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(v, args[0])
		},
	}

	cmd.Flags().String("port", server.DefaultPort, "port to listen on")
	cmd.Flags().Bool(keyOpen, false, "open the dashboard in a browser")
	cmd.Flags().Bool("http2", false, "enable HTTP/2")
	cmd.Flags().String("cors-origins", "", "comma-separated allowed CORS origins")
	_ = v.BindPFlag(server.KeyPort, cmd.Flags().Lookup("port"))
	_ = v.BindPFlag(keyOpen, cmd.Flags().Lookup(keyOpen))
	_ = v.BindPFlag(server.KeyHTTP2, cmd.Flags().Lookup("http2"))
	_ = v.BindPFlag(server.KeyCorsOrigins, cmd.Flags().Lookup("cors-origins"))

	return cmd
}

func runServe(v *viper.Viper, dataPath string) error {
	cfg, err := server.LoadConfig(v)
	if err != nil {
		return err
	}

	d, err := loadDashboard(v, dataPath)
	if err != nil {
		slog.Error("Failed to load benchmark data", "path", dataPath, "error", err)
		return err
	}

	renderer, err := router.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	s := server.New(cfg, pkgserver.NewIndexHealthChecker(d)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupRenderer(renderer).
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	router.NewDashboardRouter(s.Echo, d).Bind()
	router.NewAPIRouter(s.Echo, d).Bind()

	if v.GetBool(keyOpen) {
		url := "http://localhost" + cfg.Address()
		go func() {
			if err := browser.OpenURL(url); err != nil {
				slog.Warn("Could not open browser", "url", url, "error", err)
			}
		}()
	}

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, releasing the run index...")
	}()

	return s.Start()
}
