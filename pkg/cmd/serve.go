package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/config"
	"github.com/ausmotors/storefront/pkg/ausmotors/loader"
	"github.com/ausmotors/storefront/pkg/ausmotors/notify"
	"github.com/ausmotors/storefront/pkg/ausmotors/render"
	"github.com/ausmotors/storefront/pkg/ausmotors/server"
	"github.com/ausmotors/storefront/pkg/ausmotors/store"
	"github.com/ausmotors/storefront/pkg/ausmotors/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var RootCmd = &cobra.Command{
	Use:   RootCmdName,
	Short: RootCmdShort,
	Long:  RootCmdLong,
}

func Execute() {

	if err := RootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(-1)
	}
}

func init() {
	flags := ServeCmd.Flags()
	flags.String(config.KeyAddr, ":8080", "listen address")
	flags.String(config.KeyBackendURL, "http://localhost:3000", "listings backend base URL")
	flags.Duration(config.KeyRequestTimeout, 10*time.Second, "timeout per backend request, 0 for none")
	flags.Int(config.KeyTrackWidth, 1200, "carousel track width in pixels")
	flags.Int(config.KeyCardWidth, 300, "carousel card width including gap, in pixels")
	flags.Duration(config.KeyNotificationTTL, 5*time.Second, "how long notifications stay up")
	flags.String(config.KeyLocale, "en-AU", "locale used to format prices")
	flags.String(config.KeyLogLevel, "info", "log level")
	flags.String(config.KeyLogFormat, "json", "log format, json or text")
	flags.String(config.KeyServiceName, "ausmotors", "service name reported in traces")
	flags.String(config.KeySessionKey, "", "key signing visitor session cookies, at least 32 bytes; random when empty")

	RootCmd.AddCommand(ServeCmd)
	config.SetDefaults(viper.GetViper())
	viper.BindPFlags(ServeCmd.Flags())
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		logger := cfg.Logger()
		logger.Info("Started serve cmd")

		renderer, err := render.New(cfg.Locale)
		if err != nil {
			return err
		}
		client, err := loader.NewClient(cfg.BackendURL, cfg.RequestTimeout, logger)
		if err != nil {
			return err
		}

		catalog := store.New()
		storefront := view.New(catalog, renderer, view.Options{
			TrackWidth: cfg.TrackWidth,
			CardWidth:  cfg.CardWidth,
		}, logger)

		serve := server.NewHTTPServer(cfg.Addr, server.Deps{
			Store:       catalog,
			View:        storefront,
			Renderer:    renderer,
			Notes:       notify.NewHub(cfg.NotificationTTL, logger),
			Sessions:    server.NewSessionStore(cfg.SessionKey),
			Logger:      logger,
			ServiceName: cfg.ServiceName,
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			// Failures are logged by Bootstrap; the storefront stays up with an empty catalog.
			client.Bootstrap(ctx, catalog)
		}()

		signalCh := make(chan os.Signal, 1)

		go func() {
			logger.Infof("Listening on %s", cfg.Addr)
			if err := serve.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Shutting down the server...")
				signalCh <- os.Interrupt
			}
		}()

		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-signalCh

		logger.Infof("Shutdown the server...%s", sig.String())
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return serve.Shutdown(shutdownCtx)
	}
}
