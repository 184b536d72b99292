package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"blackjack/internal/app"
	"blackjack/internal/config"
	"blackjack/internal/device"
	"blackjack/internal/telemetry"

	"github.com/heroiclabs/nakama-common/runtime"
)

const serviceName = "blackjackd"

// Run loads the game config, starts tracing and serves until ctx is done.
func Run(ctx context.Context, cfg config.DaemonConfig, logger runtime.Logger) error {
	shutdown, err := telemetry.Setup(ctx, serviceName, telemetry.Options{Endpoint: cfg.OTelEndpoint, Enabled: cfg.OTelEnabled})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown: %v", err)
		}
	}()

	game := config.Defaults()
	if c, err := config.ReadGameConfig(cfg.ConfigPath); err != nil {
		logger.Warn("using default game config: %v", err)
	} else {
		game = *c
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svc := app.NewService(nil, app.Rules{HandCapacity: game.HandCapacity})
	srv := New(
		device.NewDevice(device.NewTable(svc, logger.WithField("component", "table")), logger.WithField("component", "device")),
		device.NewOracle(nil, logger.WithField("component", "oracle")),
		logger,
	)

	tableLn, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen table: %w", err)
	}

	errCh := make(chan error, 2)
	serving := 1
	go func() { errCh <- srv.ServeTable(ctx, tableLn) }()

	if cfg.OracleAddr != "" {
		oracleLn, err := net.Listen("tcp", cfg.OracleAddr)
		if err != nil {
			_ = tableLn.Close()
			<-errCh
			return fmt.Errorf("listen oracle: %w", err)
		}
		serving++
		go func() { errCh <- srv.ServeOracle(ctx, oracleLn) }()
	}

	var errs []error
	for i := 0; i < serving; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
			cancel()
		}
	}
	srv.Wait()
	return errors.Join(errs...)
}
