package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DaemonConfig holds the standalone daemon settings.
type DaemonConfig struct {
	Addr         string `env:"BLACKJACK_ADDR" envDefault:"127.0.0.1:7021"`
	OracleAddr   string `env:"BLACKJACK_ORACLE_ADDR" envDefault:"127.0.0.1:7008"`
	ConfigPath   string `env:"BLACKJACK_CONFIG_PATH" envDefault:"data/blackjack.json"`
	OTelEndpoint string `env:"BLACKJACK_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"BLACKJACK_OTEL_ENABLED" envDefault:"true"`
	Debug        bool   `env:"BLACKJACK_DEBUG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDaemonConfig reads the daemon settings from the environment.
func LoadDaemonConfig() (DaemonConfig, error) {
	var c DaemonConfig
	if err := ParseEnv(&c); err != nil {
		return DaemonConfig{}, err
	}
	return c, nil
}

// ParseDaemonConfig parses environment and then flags into a DaemonConfig.
func ParseDaemonConfig(fs *flag.FlagSet, args []string) (DaemonConfig, error) {
	cfg, err := LoadDaemonConfig()
	if err != nil {
		return DaemonConfig{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "blackjack table listen address")
	fs.StringVar(&cfg.OracleAddr, "oracle-addr", cfg.OracleAddr, "magic 8 ball listen address (empty disables it)")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to the game config JSON")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log debug lines")
	if err := fs.Parse(args); err != nil {
		return DaemonConfig{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}
