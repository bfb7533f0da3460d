package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/server"
	"github.com/goliatone/go-formstate/pkg/telemetry"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr      string
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the practice form over HTTP",
		Long: `Serve the practice form. Browsers get the HTML page; clients sending
"Accept: application/json" get the session state as JSON.

Routes:
  GET  /                 render the form
  POST /field            set a field (name, value)
  POST /toggle           toggle an interest (group, item)
  POST /rating           set the star rating (value)
  POST /submit, /reset, /cancel, /theme
  GET  /api/schema       payload schema
  POST /api/validate     validate a JSON record
  GET  /metrics          Prometheus metrics
  GET  /healthz          liveness`,
		Example: `  # Listen on the configured address
  formstate serve

  # Dark theme on another port
  formstate serve --addr :9090 --theme dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("theme") {
				cfg.Theme = themeName
			}

			metrics, err := telemetry.NewMetrics(cfg.Metrics)
			if err != nil {
				return fmt.Errorf("metrics: %w", err)
			}
			srv, err := server.New(cfg,
				server.WithLogger(a.log),
				server.WithMetrics(metrics),
			)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&themeName, "theme", "", "default theme for new sessions: light or dark")

	return cmd
}
