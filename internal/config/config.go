package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for jesusqgis.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	Gemini GeminiConfig `toml:"gemini"`
	Lidar  LidarConfig  `toml:"lidar"`
	Export ExportConfig `toml:"export"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type GeminiConfig struct {
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	RateLimit   float64 `toml:"rate_limit"`
}

type LidarConfig struct {
	Radius      float64 `toml:"radius"`
	Points      int     `toml:"points"`
	ForestRatio float64 `toml:"forest_ratio"`
	WaterRatio  float64 `toml:"water_ratio"`
	Seed        uint64  `toml:"seed"`
}

type ExportConfig struct {
	ProjectTitle string `toml:"project_title"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{Dir: "data"},
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			MaxTokens:   2048,
			Temperature: 0.2,
			RateLimit:   1.0,
		},
		Lidar: LidarConfig{
			Radius:      0.05,
			Points:      1000,
			ForestRatio: 0.7,
			WaterRatio:  0.1,
			Seed:        42,
		},
		Export: ExportConfig{ProjectTitle: "Projeto Amazônia GAIA DIGITAL"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
