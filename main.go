package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journify/config"
	"journify/global"
	"journify/models"
	"journify/router"

	"github.com/spf13/cobra"
)

const Version = "0.3.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "journify",
	Short:   "Journal entries with likes, plus student learning goals.",
	Version: fmt.Sprintf("v%s", Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Loads the configuration (--config, or config/config.yml), connects to the
database and the optional Redis and RabbitMQ backends, creates missing tables
and serves the API until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig(configPath)
		defer global.Close()

		if err := models.AutoMigrate(global.Db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		srv := &http.Server{
			Addr:              ":" + config.AppConfig.App.Port,
			Handler:           router.SetupRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			log.Printf("%s listening on %s", config.AppConfig.App.Name, srv.Addr)
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of journify",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file (default config/config.yml)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
