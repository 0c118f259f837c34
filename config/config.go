// Package config holds the recognized solver options, yaml-loadable the
// same way simulation presets are, and translates them into the per-stage
// configs the solvers consume.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/deform"
	"github.com/san-kum/bounce/field"
	"github.com/san-kum/bounce/shoot"
)

const (
	DefaultDimension  = 2
	DefaultKnots      = 21
	DefaultShootIters = 200
	DefaultMaxIters   = 200
)

type Config struct {
	// Dimension is the friction exponent nu: the spatial dimension of the
	// bounce minus one (2 for a 3-D bounce, 3 for 4-D).
	Dimension int `yaml:"dimension"`

	ShootRelTol   float64 `yaml:"shoot_rel_tol"`
	ShootAbsTol   float64 `yaml:"shoot_abs_tol"`
	MaxShootIters int     `yaml:"max_shoot_iters"`

	DeformTol      float64 `yaml:"deform_tol"`
	MaxDeformIters int     `yaml:"max_deform_iters"`
	StepScale      float64 `yaml:"step_scale"`

	// Knots is the initial path knot count for multi-field solves.
	Knots int `yaml:"knots"`
	// FDStep is the finite-difference gradient step when the potential
	// carries no analytic gradient.
	FDStep float64 `yaml:"fd_step"`

	RMaxScale      float64 `yaml:"rmax_scale"`
	OverflowFactor float64 `yaml:"overflow_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Dimension:      DefaultDimension,
		ShootRelTol:    1e-6,
		ShootAbsTol:    1e-10,
		MaxShootIters:  DefaultShootIters,
		DeformTol:      0.02,
		MaxDeformIters: DefaultMaxIters,
		StepScale:      0.1,
		Knots:          DefaultKnots,
		FDStep:         field.DefaultFDStep,
		RMaxScale:      1e4,
		OverflowFactor: 100,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.Dimension < 1 {
		return field.ErrBadConfig
	}
	if c.ShootRelTol <= 0 || c.ShootAbsTol <= 0 || c.MaxShootIters <= 0 {
		return field.ErrBadConfig
	}
	if c.DeformTol <= 0 || c.MaxDeformIters <= 0 || c.StepScale <= 0 {
		return field.ErrBadConfig
	}
	if c.Knots < 2 || c.FDStep <= 0 {
		return field.ErrBadConfig
	}
	if c.RMaxScale <= 0 || c.OverflowFactor <= 1 {
		return field.ErrBadConfig
	}
	return nil
}

// ShootConfig translates into the inner solver's settings.
func (c *Config) ShootConfig() shoot.Config {
	return shoot.Config{
		Nu:             c.Dimension,
		RelTol:         c.ShootRelTol,
		AbsTol:         c.ShootAbsTol,
		MaxIters:       c.MaxShootIters,
		RMaxScale:      c.RMaxScale,
		OverflowFactor: c.OverflowFactor,
	}
}

// DeformConfig translates into the outer relaxation settings.
func (c *Config) DeformConfig() deform.Config {
	d := deform.DefaultConfig()
	d.Tol = c.DeformTol
	d.MaxIters = c.MaxDeformIters
	d.StepScale = c.StepScale
	d.Shoot = c.ShootConfig()
	return d
}
