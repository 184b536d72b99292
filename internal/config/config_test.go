package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadGameConfig(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		capacity int
		ttl      time.Duration
		wantErr  string
	}{
		{name: "Full", body: `{"hand_capacity": 11, "ticket_ttl_seconds": 60}`, capacity: 11, ttl: time.Minute},
		{name: "Empty object keeps defaults", body: `{}`, capacity: 0, ttl: time.Hour},
		{name: "Non-positive ttl falls back", body: `{"ticket_ttl_seconds": 0}`, ttl: time.Hour},
		{name: "Negative capacity", body: `{"hand_capacity": -1}`, wantErr: "hand_capacity"},
		{name: "Malformed", body: `{`, wantErr: "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ReadGameConfig(writeConfig(t, tt.body))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGameConfig error: %v", err)
			}
			if c.HandCapacity != tt.capacity || c.TicketTTL() != tt.ttl {
				t.Fatalf("config = %+v, want capacity %d ttl %v", c, tt.capacity, tt.ttl)
			}
		})
	}
}

func TestReadGameConfigMissingFile(t *testing.T) {
	if _, err := ReadGameConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil || !strings.Contains(err.Error(), "read game config") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadGameConfigOnce(t *testing.T) {
	if got := GetGameConfig(); got != Defaults() {
		t.Fatalf("unloaded config = %+v, want defaults", got)
	}

	path := writeConfig(t, `{"hand_capacity": 8}`)
	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := LoadGameConfig(writeConfig(t, `{"hand_capacity": 3}`)); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := GetGameConfig().HandCapacity; got != 8 {
		t.Fatalf("hand capacity = %d, want first load to win", got)
	}
}

func TestLoadDaemonConfig(t *testing.T) {
	t.Setenv("BLACKJACK_ADDR", "0.0.0.0:9000")
	t.Setenv("BLACKJACK_OTEL_ENABLED", "false")

	c, err := LoadDaemonConfig()
	if err != nil {
		t.Fatalf("LoadDaemonConfig: %v", err)
	}
	if c.Addr != "0.0.0.0:9000" || c.OTelEnabled {
		t.Fatalf("config = %+v", c)
	}
	if c.OracleAddr != "127.0.0.1:7008" || c.ConfigPath != DefaultPath {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestParseEnvWrapsErrors(t *testing.T) {
	t.Setenv("BLACKJACK_OTEL_ENABLED", "maybe")
	var c DaemonConfig
	err := ParseEnv(&c)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err = %v, want parse env error", err)
	}
}

func TestParseDaemonConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BLACKJACK_ADDR", "0.0.0.0:9000")

	fs := flag.NewFlagSet("blackjackd", flag.ContinueOnError)
	c, err := ParseDaemonConfig(fs, []string{"-addr", "127.0.0.1:9999", "-oracle-addr", "", "-debug"})
	if err != nil {
		t.Fatalf("ParseDaemonConfig: %v", err)
	}
	if c.Addr != "127.0.0.1:9999" || c.OracleAddr != "" || !c.Debug {
		t.Fatalf("config = %+v", c)
	}
}
