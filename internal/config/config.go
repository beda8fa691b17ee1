package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/lib"
)

// Environment variables override the config file. They may also be set in a
// .env file in the working directory.
const (
	EnvHTTPAddress  = "GRAPHEDIT_HTTP_ADDRESS"
	EnvGRPCAddress  = "GRAPHEDIT_GRPC_ADDRESS"
	EnvGRPCEnabled  = "GRAPHEDIT_GRPC_ENABLED"
	EnvPingInterval = "GRAPHEDIT_PING_INTERVAL"
	EnvSeed         = "GRAPHEDIT_SEED"
	EnvLogLevel     = "GRAPHEDIT_LOG_LEVEL"
)

type Config struct {
	HTTP HTTPConfig `toml:"http"`
	GRPC GRPCConfig `toml:"grpc"`
	Seed SeedConfig `toml:"seed"`
	Log  LogConfig  `toml:"log"`
}

// HTTPConfig controls the page and websocket server.
type HTTPConfig struct {
	Address      string       `toml:"address"`
	PingInterval lib.Duration `toml:"ping_interval"`
	WriteTimeout lib.Duration `toml:"write_timeout"`
}

// GRPCConfig controls the remote session API.
type GRPCConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
	// IdleTimeout closes sessions no call has used for this long, zero keeps
	// them until the client closes them.
	IdleTimeout lib.Duration `toml:"idle_timeout"`
}

// SeedConfig controls the graph every new session starts from.
type SeedConfig struct {
	Seed  int64 `toml:"seed"`
	Nodes int   `toml:"nodes"`
	Edges int   `toml:"edges"`
}

type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      "0.0.0.0:8051",
			PingInterval: lib.DurationFrom(30 * time.Second),
			WriteTimeout: lib.DurationFrom(10 * time.Second),
		},
		GRPC: GRPCConfig{
			Enabled:     false,
			Address:     "127.0.0.1:50051",
			IdleTimeout: lib.DurationFrom(30 * time.Minute),
		},
		Seed: SeedConfig{
			Seed:  graph.DefaultSeed,
			Nodes: graph.DefaultNodes,
			Edges: graph.DefaultEdges,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds a Config from the defaults, the TOML file at path (skipped if path
// is empty), a .env file if one exists, and then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvHTTPAddress); v != "" {
		c.HTTP.Address = v
	}
	if v := os.Getenv(EnvGRPCAddress); v != "" {
		c.GRPC.Address = v
	}
	if v := os.Getenv(EnvGRPCEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGRPCEnabled, err)
		}
		c.GRPC.Enabled = enabled
	}
	if v := os.Getenv(EnvPingInterval); v != "" {
		if err := c.HTTP.PingInterval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvPingInterval, err)
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address must be set")
	}
	if c.GRPC.Enabled && c.GRPC.Address == "" {
		return errors.New("grpc.address must be set when grpc is enabled")
	}
	if c.GRPC.IdleTimeout.Duration < 0 {
		return errors.New("grpc.idle_timeout must not be negative")
	}
	if c.Seed.Nodes < 0 || c.Seed.Edges < 0 {
		return fmt.Errorf("seed sizes must not be negative, got %d nodes and %d edges", c.Seed.Nodes, c.Seed.Edges)
	}
	if _, err := lib.ParseSLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Elements returns a freshly seeded element list.
func (s SeedConfig) Elements() []graph.Element {
	return graph.Seed(s.Seed, s.Nodes, s.Edges)
}
