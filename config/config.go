package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradeplan/projection"
	"github.com/rustyeddy/tradeplan/risk"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadEnv.
const (
	EnvConfig   = "TRADEPLAN_CONFIG"
	EnvDB       = "TRADEPLAN_DB"
	EnvLogLevel = "TRADEPLAN_LOG_LEVEL"
)

type Config struct {
	Plan  projection.Params `json:"plan" yaml:"plan"`
	Lots  LotsConfig        `json:"lots" yaml:"lots"`
	Store StoreConfig       `json:"store" yaml:"store"`
	Log   LogConfig         `json:"log" yaml:"log"`
}

// LotsConfig describes the broker's tradeable lot sizes.
type LotsConfig struct {
	MinLot  float64 `json:"min_lot" yaml:"min_lot"`
	LotStep float64 `json:"lot_step" yaml:"lot_step"`
}

func (l LotsConfig) Quantizer() risk.Quantizer {
	return risk.Quantizer{MinLot: l.MinLot, Step: l.LotStep}
}

type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

type LogConfig struct {
	Level   string `json:"level" yaml:"level"` // debug, info, warn or error
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

// LoadFromFile reads a .json file as JSON and anything else as YAML,
// falling back to JSON. Missing keys keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadEnv loads a .env file when present and applies environment
// overrides. A missing .env is not an error.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env: %w", err)
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Plan.Validate(); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if c.Lots.MinLot <= 0 {
		return fmt.Errorf("lots.min_lot must be positive")
	}
	if c.Lots.LotStep < 0 {
		return fmt.Errorf("lots.lot_step must not be negative")
	}
	if !c.Lots.Quantizer().OnGrid() {
		return fmt.Errorf("lots.min_lot %g must be a multiple of lots.lot_step %g", c.Lots.MinLot, c.Lots.LotStep)
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

func Default() *Config {
	return &Config{
		Plan: projection.Params{
			Capital:         1000,
			RiskPct:         2,
			TPPoints:        20,
			SLPoints:        10,
			MaxTradesPerDay: 2,
			TargetPerDay:    100,
			WinRate:         projection.DefaultWinRate,
		},
		Lots: LotsConfig{
			MinLot:  risk.MinLot,
			LotStep: risk.LotStep,
		},
		Store: StoreConfig{
			DBPath: "./tradeplan.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
