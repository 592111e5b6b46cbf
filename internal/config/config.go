package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/physics"
)

const (
	DefaultAngleDeg   = 90.0
	DefaultMass       = 1.0
	DefaultLength     = 1.0
	DefaultHorizon    = 20.0
	DefaultDt         = 0.02
	DefaultSteps      = 1000
	DefaultIntegrator = "symplectic"
)

// horizonTolerance is the relative slack allowed between Steps*Dt and Horizon.
const horizonTolerance = 1e-9

type Config struct {
	Integrator string  `yaml:"integrator" json:"integrator"`
	Angle1Deg  float64 `yaml:"angle1_deg" json:"angle1_deg"`
	Angle2Deg  float64 `yaml:"angle2_deg" json:"angle2_deg"`
	Mass1      float64 `yaml:"mass1" json:"mass1"`
	Mass2      float64 `yaml:"mass2" json:"mass2"`
	Length1    float64 `yaml:"length1" json:"length1"`
	Length2    float64 `yaml:"length2" json:"length2"`
	Gravity    float64 `yaml:"gravity" json:"gravity"`
	Horizon    float64 `yaml:"horizon" json:"horizon"`
	Dt         float64 `yaml:"dt" json:"dt"`
	Steps      int     `yaml:"steps" json:"steps"`
}

// DefaultConfig is the reference run: both arms horizontal, unit masses and
// lengths, 1000 samples over 20 seconds.
func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Angle1Deg:  DefaultAngleDeg,
		Angle2Deg:  DefaultAngleDeg,
		Mass1:      DefaultMass,
		Mass2:      DefaultMass,
		Length1:    DefaultLength,
		Length2:    DefaultLength,
		Gravity:    physics.DefaultGravity,
		Horizon:    DefaultHorizon,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
	}
}

// Load reads a yaml config. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml config on top of a copy of base, so keys missing from
// the file keep the values of base. base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the physical values and the step layout. A zero Steps is
// filled in from Horizon/Dt; otherwise Steps*Dt must equal Horizon.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := c.InitialState(); err != nil {
		return err
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt = %v: %w", c.Dt, dynamo.ErrInvalidStep)
	}
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("horizon = %v: %w", c.Horizon, dynamo.ErrInvalidStep)
	}
	if c.Steps == 0 {
		c.Steps = int(math.Round(c.Horizon / c.Dt))
	}
	if c.Steps < 2 {
		return fmt.Errorf("steps = %d: %w", c.Steps, dynamo.ErrInvalidStep)
	}
	if math.Abs(float64(c.Steps)*c.Dt-c.Horizon) > horizonTolerance*c.Horizon {
		return fmt.Errorf("steps*dt = %v does not match horizon %v: %w",
			float64(c.Steps)*c.Dt, c.Horizon, dynamo.ErrInvalidStep)
	}
	return nil
}

func (c *Config) Params() (physics.Params, error) {
	return physics.NewParams(c.Mass1, c.Mass2, c.Length1, c.Length2, c.Gravity)
}

func (c *Config) InitialState() (physics.InitialState, error) {
	return physics.InitialStateDegrees(c.Angle1Deg, c.Angle2Deg)
}
