package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/manifest"
	"github.com/goliatone/go-rangeslider/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		templates  string
		watch      bool
		params     paramFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the control to browsers",
		Long: `Serve the standalone control page, the websocket session endpoint, the
outputs lookup, health and Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if templates != "" {
				cfg.TemplateDir = templates
			}
			if params.Manifest == "" {
				params.Manifest = cfg.Manifest
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m, bag, err := params.resolve(ctx, cfg.Parameters)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg,
				server.WithLogger(logger()),
				server.WithManifest(m),
				server.WithParameters(bag),
			)
			if err != nil {
				return err
			}
			if watch {
				if params.Manifest == "" {
					return fmt.Errorf("--watch needs a manifest file")
				}
				go func() {
					resolve := func(ctx context.Context) (manifest.Manifest, host.Parameters, error) {
						return params.resolve(ctx, cfg.Parameters)
					}
					if err := srv.WatchManifest(ctx, params.Manifest, resolve); err != nil {
						logger().WithError(err).Error("manifest watch stopped")
					}
				}()
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML server config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of page.tpl/bootstrap.tpl overrides")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the control when the manifest file changes")
	params.register(cmd)
	return cmd
}
