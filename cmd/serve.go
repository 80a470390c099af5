package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesusmjunior/jesusqgis/internal/store"
	"github.com/jesusmjunior/jesusqgis/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive analysis web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		srv := &web.Server{
			Store:  s,
			Config: cfg,
			Addr:   fmt.Sprintf("%s:%d", serveHost, servePort),
			Logger: logger,
		}

		// The server runs without a Gemini client when no key is set;
		// analyze requests then use the fallback dataset.
		if client, err := newGeminiClient(); err == nil {
			srv.Extractor = client
		} else {
			logger.Warn("gemini client unavailable", zap.Error(err))
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		return srv.ListenAndServe(ctx)
	},
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
