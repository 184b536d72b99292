package app

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Command
		wantErr bool
	}{
		{name: "Reset with newline", line: "RESET\n", want: CommandReset},
		{name: "Shuffle with newline", line: "SHUFFLE\n", want: CommandShuffle},
		{name: "Deal with newline", line: "DEAL\n", want: CommandDeal},
		{name: "Hit with CRLF", line: "HIT\r\n", want: CommandHit},
		{name: "Stand without newline", line: "STAND", want: CommandStand},
		{name: "Lowercase rejected", line: "deal\n", wantErr: true},
		{name: "Leading space rejected", line: " DEAL\n", wantErr: true},
		{name: "Two newlines rejected", line: "DEAL\n\n", wantErr: true},
		{name: "Unknown token", line: "SPLIT\n", wantErr: true},
		{name: "Empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCommand) {
					t.Fatalf("ParseCommand(%q) err = %v, want ErrInvalidCommand", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCommand(%q) = %s, want %s", tt.line, got, tt.want)
			}
		})
	}
}

func TestCommandStringRoundTrip(t *testing.T) {
	for _, cmd := range []Command{CommandReset, CommandShuffle, CommandDeal, CommandHit, CommandStand} {
		got, err := ParseCommand(cmd.String() + "\n")
		if err != nil || got != cmd {
			t.Fatalf("ParseCommand(%s) = %s, %v", cmd, got, err)
		}
	}
}
