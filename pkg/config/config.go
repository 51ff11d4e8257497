// Package config loads ppinet settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/validation"
	"github.com/dd0wney/ppinet/pkg/visualization"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvPort     = "PPINET_PORT"
	EnvFixtures = "PPINET_FIXTURES"
	EnvDataDir  = "PPINET_DATA_DIR"
	EnvLayout   = "PPINET_LAYOUT"
	EnvSource   = "PPINET_SOURCE"
	EnvLogLevel = "LOG_LEVEL"
	EnvDemoData = "PPINET_DEMO_DATA"
	EnvTopN     = "PPINET_TOP_N"
)

// Config is the complete runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Layout   LayoutConfig   `yaml:"layout"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// AnalyzeTimeout bounds a single /analyze request.
	AnalyzeTimeout time.Duration `yaml:"analyze_timeout"`
}

// DataConfig selects where interactions come from. The file directory is
// consulted first, then the fixture bundle, then the built-in demo data.
type DataConfig struct {
	FixturesPath  string `yaml:"fixtures"`
	DataDir       string `yaml:"data_dir"`
	DemoData      bool   `yaml:"demo_data"`
	DefaultSource string `yaml:"default_source"`
}

type AnalysisConfig struct {
	DampingFactor     float64 `yaml:"damping_factor"`
	MaxIterations     int     `yaml:"max_iterations"`
	Tolerance         float64 `yaml:"tolerance"`
	AllowDisconnected bool    `yaml:"allow_disconnected"`
	TopN              int     `yaml:"top_n"`
}

type LayoutConfig struct {
	Algorithm  string  `yaml:"algorithm"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Iterations int     `yaml:"iterations"`
	Seed       int64   `yaml:"seed"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	pr := algorithms.DefaultPageRankOptions()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AnalyzeTimeout:  20 * time.Second,
		},
		Data: DataConfig{
			DemoData:      true,
			DefaultSource: string(interactions.BioGRID),
		},
		Analysis: AnalysisConfig{
			DampingFactor: pr.DampingFactor,
			MaxIterations: pr.MaxIterations,
			Tolerance:     pr.Tolerance,
			TopN:          algorithms.DefaultOptions().TopN,
		},
		Layout: LayoutConfig{
			Algorithm:  string(visualization.LayoutSpring),
			Width:      800,
			Height:     600,
			Iterations: 50,
			Seed:       1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults without consulting the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables read by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v := getenv(EnvTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTopN, v, err)
		}
		c.Analysis.TopN = n
	}
	if v := getenv(EnvDemoData); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDemoData, v, err)
		}
		c.Data.DemoData = enabled
	}
	c.Data.FixturesPath = validation.DefaultOr(getenv(EnvFixtures), c.Data.FixturesPath)
	c.Data.DataDir = validation.DefaultOr(getenv(EnvDataDir), c.Data.DataDir)
	c.Data.DefaultSource = validation.DefaultOr(getenv(EnvSource), c.Data.DefaultSource)
	c.Layout.Algorithm = validation.DefaultOr(getenv(EnvLayout), c.Layout.Algorithm)
	c.Logging.Level = validation.DefaultOr(getenv(EnvLogLevel), c.Logging.Level)
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	layouts := make([]string, len(visualization.LayoutKinds))
	for i, k := range visualization.LayoutKinds {
		layouts[i] = string(k)
	}

	return validation.NewConfigValidator("Config").
		Field("Server.Port", validation.InRange(c.Server.Port, 1, 65535)).
		Field("Server.ReadTimeout", validation.NotNegative(c.Server.ReadTimeout)).
		Field("Server.WriteTimeout", validation.NotNegative(c.Server.WriteTimeout)).
		Field("Server.ShutdownTimeout", validation.NotNegative(c.Server.ShutdownTimeout)).
		Field("Server.AnalyzeTimeout", validation.NotNegative(c.Server.AnalyzeTimeout)).
		Field("Data.DefaultSource", func() error {
			_, err := interactions.ParseSource(c.Data.DefaultSource)
			return err
		}).
		When(c.Data.DataDir != "", func(v *validation.ConfigValidator) {
			v.Field("Data.DataDir", validation.Dir(c.Data.DataDir))
		}).
		Field("Analysis.DampingFactor", validation.InRange(c.Analysis.DampingFactor, 0, 1)).
		Field("Analysis.MaxIterations", validation.Positive(c.Analysis.MaxIterations)).
		Field("Analysis.Tolerance", validation.Positive(c.Analysis.Tolerance)).
		Field("Analysis.TopN", validation.Positive(c.Analysis.TopN)).
		Field("Layout.Algorithm", validation.OneOf(c.Layout.Algorithm, layouts...)).
		Field("Layout.Width", validation.Positive(c.Layout.Width)).
		Field("Layout.Height", validation.Positive(c.Layout.Height)).
		Field("Layout.Iterations", validation.Positive(c.Layout.Iterations)).
		Field("Logging.Level", func() error {
			if _, ok := logging.LookupLevel(c.Logging.Level); !ok {
				return fmt.Errorf("unknown log level %q", c.Logging.Level)
			}
			return nil
		}).
		Err()
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// AlgorithmOptions converts the analysis section to centrality options.
func (c *Config) AlgorithmOptions() algorithms.Options {
	opts := algorithms.DefaultOptions()
	opts.PageRank.DampingFactor = c.Analysis.DampingFactor
	opts.PageRank.MaxIterations = c.Analysis.MaxIterations
	opts.PageRank.Tolerance = c.Analysis.Tolerance
	opts.Eigenvector.MaxIterations = c.Analysis.MaxIterations
	opts.Eigenvector.Tolerance = c.Analysis.Tolerance
	opts.Eigenvector.AllowDisconnected = c.Analysis.AllowDisconnected
	opts.TopN = c.Analysis.TopN
	return opts
}

// LayoutOptions converts the layout section to visualization settings.
func (c *Config) LayoutOptions() (visualization.LayoutKind, *visualization.LayoutConfig) {
	kind, err := visualization.ParseLayoutKind(c.Layout.Algorithm)
	if err != nil {
		kind = visualization.LayoutSpring
	}
	return kind, &visualization.LayoutConfig{
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Iterations: c.Layout.Iterations,
		Padding:    50,
		Seed:       c.Layout.Seed,
	}
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// Fetcher assembles the interaction sources described by the data section.
func (c *Config) Fetcher() (interactions.Fetcher, error) {
	chain := make([]interactions.Fetcher, 0, 3)
	if c.Data.DataDir != "" {
		chain = append(chain, interactions.NewFileFetcher(c.Data.DataDir))
	}
	if c.Data.FixturesPath != "" {
		fixtures, err := interactions.LoadBundleFile(c.Data.FixturesPath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, fixtures)
	}
	if c.Data.DemoData {
		chain = append(chain, interactions.NewDemoFetcher())
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return interactions.Chain(chain...), nil
}
