package nakama

import (
	"context"
	"database/sql"

	"blackjack/internal/app"
	"blackjack/internal/config"
	"blackjack/internal/device"
	"blackjack/internal/random"
	"blackjack/internal/session"
	"blackjack/internal/telemetry"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	configPath := env[envConfigPath]
	if configPath == "" {
		configPath = config.DefaultPath
	}
	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()

	if endpoint := env[envOTelEndpoint]; endpoint != "" {
		shutdown, err := telemetry.Setup(ctx, "blackjack-nakama", telemetry.Options{Endpoint: endpoint, Enabled: true})
		if err != nil {
			logger.Warn("InitModule: Tracing disabled: %v", err)
		} else if err := initializer.RegisterShutdown(func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) {
			if err := shutdown(ctx); err != nil {
				logger.Warn("Shutdown: Failed to flush traces: %v", err)
			}
		}); err != nil {
			return err
		}
	}

	secret := env[envTicketSecret]
	if secret == "" {
		generated, err := random.Secret(32)
		if err != nil {
			return err
		}
		secret = generated
		logger.Warn("Ticket secret missing from env, using a per-process secret.")
	}

	svc := app.NewService(nil, app.Rules{HandCapacity: cfg.HandCapacity})
	table := device.NewTable(svc, logger.WithField("component", "table"))
	module := NewModule(
		device.NewDevice(table, logger.WithField("component", "device")),
		device.NewOracle(nil, logger.WithField("component", "oracle")),
		session.NewTicketIssuer(secret, ticketIssuerName, cfg.TicketTTL()),
	)
	if err := module.Register(initializer); err != nil {
		return err
	}

	logger.Info("Blackjack Go module loaded.")
	return nil
}
