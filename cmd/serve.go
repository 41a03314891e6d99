package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring and team picking HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	reviewer, err := newReviewer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("serving without AI review", zap.Error(err))
	}

	logger.Info("starting the hire-picker server", zap.String("version", version), zap.String("addr", config.Server.Addr))

	if err := server.New(config.Server, logger, reviewer).Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
