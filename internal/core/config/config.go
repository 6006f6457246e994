// Package config holds the settings of the simulation and of the frame
// server. Files are YAML; every field missing from a file keeps its default.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/shardfall/internal/core/observability/log"
)

type Config struct {
	Physics Physics `json:"physics" yaml:"physics"`
	Level   Level   `json:"level" yaml:"level"`
	Server  Server  `json:"server" yaml:"server"`
}

// Physics tunes collisions and fragmentation.
type Physics struct {
	Elasticity      float64 `json:"elasticity" yaml:"elasticity"`
	MinFragmentArea float64 `json:"min_fragment_area" yaml:"min_fragment_area"`
	BlastMass       float64 `json:"blast_mass" yaml:"blast_mass"`
	BlastRange      float64 `json:"blast_range" yaml:"blast_range"`
	BlastSpeed      float64 `json:"blast_speed" yaml:"blast_speed"`
	SpaceshipMass   float64 `json:"spaceship_mass" yaml:"spaceship_mass"`
	BurstSpeed      float64 `json:"burst_speed" yaml:"burst_speed"`
	BurstDistance   float64 `json:"burst_distance" yaml:"burst_distance"`
}

// Level describes the play field and how levels are seeded.
type Level struct {
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	Clearing      float64 `json:"clearing" yaml:"clearing"`
	SeedFactor    uint64  `json:"seed_factor" yaml:"seed_factor"`
	BaseCount     int     `json:"base_count" yaml:"base_count"`
	CountPerLevel int     `json:"count_per_level" yaml:"count_per_level"`
}

type Server struct {
	ListenAddr  string  `json:"listen_addr" yaml:"listen_addr"`
	TickRate    float64 `json:"tick_rate" yaml:"tick_rate"`
	LogLevel    string  `json:"log_level" yaml:"log_level"`
	MaxSessions int     `json:"max_sessions" yaml:"max_sessions"`
}

func Default() Config {
	return Config{
		Physics: Physics{
			Elasticity:      0.9,
			MinFragmentArea: 400,
			BlastMass:       200,
			BlastRange:      1200,
			BlastSpeed:      800,
			SpaceshipMass:   300,
			BurstSpeed:      100,
			BurstDistance:   50,
		},
		Level: Level{
			Width:         1200,
			Height:        900,
			Clearing:      100,
			SeedFactor:    1979 * 11,
			BaseCount:     3,
			CountPerLevel: 2,
		},
		Server: Server{
			ListenAddr:  "127.0.0.1:8080",
			TickRate:    60,
			LogLevel:    "info",
			MaxSessions: 64,
		},
	}
}

// TickInterval is the wall-clock period of one server tick.
func (s Server) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / s.TickRate)
}

// LoadYAML decodes r over the defaults and validates the result. An empty
// document yields the defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// Validate reports every problem at once, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	p := c.Physics
	check(p.Elasticity >= 0 && p.Elasticity <= 1, "physics.elasticity %v outside [0, 1]", p.Elasticity)
	check(p.MinFragmentArea >= 0, "physics.min_fragment_area %v is negative", p.MinFragmentArea)
	check(p.BlastMass > 0, "physics.blast_mass %v must be positive", p.BlastMass)
	check(p.BlastRange > 0, "physics.blast_range %v must be positive", p.BlastRange)
	check(p.BlastSpeed > 0, "physics.blast_speed %v must be positive", p.BlastSpeed)
	check(p.SpaceshipMass > 0, "physics.spaceship_mass %v must be positive", p.SpaceshipMass)
	check(p.BurstSpeed > 0, "physics.burst_speed %v must be positive", p.BurstSpeed)
	check(p.BurstDistance > 0, "physics.burst_distance %v must be positive", p.BurstDistance)

	l := c.Level
	check(l.Width > 0 && l.Height > 0, "level bounds %vx%v must be positive", l.Width, l.Height)
	check(l.Clearing >= 0, "level.clearing %v is negative", l.Clearing)
	check(2*l.Clearing < min(l.Width, l.Height), "level.clearing %v leaves no room for asteroids", l.Clearing)
	check(l.BaseCount >= 0 && l.CountPerLevel >= 0, "level asteroid counts must not be negative")

	s := c.Server
	check(s.ListenAddr != "", "server.listen_addr is required")
	check(s.TickRate > 0, "server.tick_rate %v must be positive", s.TickRate)
	_, err := log.ParseLevel(s.LogLevel)
	check(err == nil, "server.log_level %q is unknown", s.LogLevel)
	check(s.MaxSessions > 0, "server.max_sessions %d must be positive", s.MaxSessions)

	return errors.Join(errs...)
}
