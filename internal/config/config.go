package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultPath is where the game config is looked up when no path is configured.
const DefaultPath = "data/blackjack.json"

type GameConfig struct {
	// HandCapacity bounds both hands; 0 leaves them unbounded.
	HandCapacity int `json:"hand_capacity"`
	// TicketTTLSeconds is how long an RPC session ticket stays valid.
	TicketTTLSeconds int `json:"ticket_ttl_seconds"`
}

// Defaults returns the configuration used when no file is available.
func Defaults() GameConfig {
	return GameConfig{
		HandCapacity:     0,
		TicketTTLSeconds: 3600,
	}
}

// TicketTTL returns the ticket lifetime as a duration.
func (c GameConfig) TicketTTL() time.Duration {
	return time.Duration(c.TicketTTLSeconds) * time.Second
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// ReadGameConfig reads and validates the config at path. Missing fields keep their defaults.
func ReadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	c := Defaults()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.HandCapacity < 0 {
		return nil, fmt.Errorf("hand_capacity must not be negative, got %d", c.HandCapacity)
	}
	if c.TicketTTLSeconds <= 0 {
		c.TicketTTLSeconds = Defaults().TicketTTLSeconds
	}
	return &c, nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := ReadGameConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults if none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}
