package commands

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"retail-bi/internal/api"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page views as JSON over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		e := api.NewServer(data, cfg.DashboardYear)
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Info().Str("addr", addr).Msg("HTTP server listening")
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Msg("HTTP server shutting down")
			return e.Shutdown(shutdownCtx)
		})

		if serveOpen {
			url := dashboardURL(addr)
			g.Go(func() error {
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
				}
				return nil
			})
		}

		return g.Wait()
	},
}

func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/api/dashboard"
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard in the default browser")
}
