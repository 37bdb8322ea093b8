package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/mosaic/internal/composer"
	"github.com/kiesman99/mosaic/internal/server"
	"github.com/kiesman99/mosaic/internal/storage"
)

const version = "1.0.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the mosaic API",
	Long: `Start an HTTP server that stores uploaded images and composes mosaics
out of them.

Uploaded files and results live in a single directory. Download links are
built from --public-url, or from the request host when it is empty.

Examples:
  # Start server on default port 8080
  mosaic serve

  # Start server on custom port with a custom upload directory
  mosaic serve --port 3000 --upload-dir /var/lib/mosaic

  # Start server with custom bind address behind a proxy
  mosaic serve --bind 0.0.0.0 --port 8080 --public-url https://mosaic.example.com`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().StringP("bind", "b", "localhost", "bind address")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().Duration("timeout", 30*time.Second, "request timeout")
	serveCmd.Flags().String("public-url", "", "base URL used in download links (default: request host)")

	// Storage and composition
	serveCmd.Flags().String("upload-dir", "./uploads", "directory for uploaded and composed images")
	serveCmd.Flags().Int("cache-size", 32, "number of decoded images kept in memory")
	serveCmd.Flags().Int("frag-width", composer.DefaultServerFragment, "default tile width in pixels")
	serveCmd.Flags().Int("frag-height", composer.DefaultServerFragment, "default tile height in pixels")

	// Bind flags to viper
	viper.BindPFlag("server.bind", serveCmd.Flags().Lookup("bind"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.timeout", serveCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("server.public-url", serveCmd.Flags().Lookup("public-url"))
	viper.BindPFlag("storage.upload-dir", serveCmd.Flags().Lookup("upload-dir"))
	viper.BindPFlag("cache.size", serveCmd.Flags().Lookup("cache-size"))
	viper.BindPFlag("mosaic.frag-width", serveCmd.Flags().Lookup("frag-width"))
	viper.BindPFlag("mosaic.frag-height", serveCmd.Flags().Lookup("frag-height"))
}

func runServe(cmd *cobra.Command, args []string) error {
	bind := viper.GetString("server.bind")
	port := viper.GetInt("server.port")
	timeout := viper.GetDuration("server.timeout")

	addr := fmt.Sprintf("%s:%d", bind, port)

	store, err := storage.OpenDir(viper.GetString("storage.upload-dir"))
	if err != nil {
		return err
	}

	opts := composer.DefaultOptions()
	opts.FragWidth = viper.GetInt("mosaic.frag-width")
	opts.FragHeight = viper.GetInt("mosaic.frag-height")
	opts.JPEGQuality = viper.GetInt("mosaic.jpeg-quality")
	opts.CacheSize = viper.GetInt("cache.size")
	if opts.FragWidth < 1 || opts.FragHeight < 1 {
		return fmt.Errorf("fragment size must be positive, got %dx%d", opts.FragWidth, opts.FragHeight)
	}

	service, err := composer.New(store, opts)
	if err != nil {
		return err
	}

	// Create server implementation
	apiServer := server.NewServer(service, version, viper.GetString("server.public-url"))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.NewRouter(apiServer, timeout),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	log.WithFields(log.Fields{
		"addr":     addr,
		"fragment": fmt.Sprintf("%dx%d", opts.FragWidth, opts.FragHeight),
	}).Info("Starting mosaic server")
	fmt.Fprintf(cmd.ErrOrStderr(), "Health check: http://%s/api/v1/health\n", addr)
	fmt.Fprintf(cmd.ErrOrStderr(), "Compose endpoint: http://%s/api/v1/compose\n", addr)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %v", err)
	}

	return nil
}
