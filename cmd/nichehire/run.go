package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/nichehire/nichehire/internal/api_server"
	"github.com/nichehire/nichehire/internal/config"
	"github.com/nichehire/nichehire/internal/mailer"
	"github.com/nichehire/nichehire/internal/matching"
	"github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching-cycle scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.Level(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("starting nichehire matching service")
		defer zap.S().Info("nichehire matching service stopped")

		zap.S().Info("initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalf("running initial migration: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalf("creating metrics listener: %v", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Errorf("error running metrics server: %v", err)
			}
		}()

		dispatcher := matching.NewDispatcher(newMailer(cfg))
		cycle := matching.NewCycle(s.Job(), s.User(), dispatcher)
		scheduler := matching.NewScheduler(cycle, cfg.Service.MatchingInterval)
		scheduler.Run(ctx)

		return nil
	},
}

func newMailer(cfg *config.Config) mailer.Mailer {
	if cfg.Mailer.SMTPHost == "" {
		return mailer.NewLogMailer()
	}
	return mailer.NewSMTPMailer(
		cfg.Mailer.SMTPHost,
		cfg.Mailer.SMTPPort,
		cfg.Mailer.User,
		cfg.Mailer.Password,
		cfg.Mailer.From,
	)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
