package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInputValue = errors.New("config: invalid input")
	ErrInputCount = errors.New("config: invalid number of inputs")
)

// ParseInputLine applies a whitespace separated input line to a copy of base.
// The line holds either "ANGLE1 ANGLE2" or "ANGLE1 ANGLE2 M1 M2 L1 L2", with
// angles in degrees.
func ParseInputLine(line string, base *Config) (*Config, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 && len(fields) != 6 {
		return nil, fmt.Errorf("got %d values, want 2 or 6: %w", len(fields), ErrInputCount)
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, ErrInputValue)
		}
		values[i] = v
	}

	cfg := base.Clone()
	cfg.Angle1Deg, cfg.Angle2Deg = values[0], values[1]
	if len(values) == 6 {
		cfg.Mass1, cfg.Mass2 = values[2], values[3]
		cfg.Length1, cfg.Length2 = values[4], values[5]
	}
	return cfg, nil
}
