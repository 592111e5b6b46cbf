package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInputLine(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name string
		line string
		want func() *Config
		err  error
	}{
		{
			name: "angles only",
			line: "120 -45",
			want: func() *Config {
				c := DefaultConfig()
				c.Angle1Deg, c.Angle2Deg = 120, -45
				return c
			},
		},
		{
			name: "angles and parameters",
			line: "  30 60 2 0.5 1.5 0.7 ",
			want: func() *Config {
				c := DefaultConfig()
				c.Angle1Deg, c.Angle2Deg = 30, 60
				c.Mass1, c.Mass2, c.Length1, c.Length2 = 2, 0.5, 1.5, 0.7
				return c
			},
		},
		{name: "too few", line: "90", err: ErrInputCount},
		{name: "wrong count", line: "90 90 1 1", err: ErrInputCount},
		{name: "empty", line: "", err: ErrInputCount},
		{name: "not a number", line: "ninety 90", err: ErrInputValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInputLine(tt.line, base)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff(DefaultConfig(), base); diff != "" {
		t.Errorf("base config was modified:\n%s", diff)
	}
}
