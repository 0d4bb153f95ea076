package config

// Package config provides a reusable loader for PlatariumCore node
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/PlatariumNetwork/PlatariumCore/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for a PlatariumCore node. It covers
// only the fields the consensus core itself is parameterized by — network
// identity, system capacity and suspension threshold, forced-inclusion
// queue capacity, and logging —
// never the block-hashed constants (SCORE_SCALE, threshold percentages,
// tier boundaries) that spec.md fixes for every node.
type Config struct {
	Network struct {
		ID         string `mapstructure:"id" json:"id"`
		ChainID    int    `mapstructure:"chain_id" json:"chain_id"`
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"network" json:"network"`

	Consensus struct {
		SystemCapacity      uint64 `mapstructure:"system_capacity" json:"system_capacity"`
		SuspensionThreshold uint64 `mapstructure:"suspension_threshold" json:"suspension_threshold"`
	} `mapstructure:"consensus" json:"consensus"`

	Mempool struct {
		ForcedInclusionCapacity int `mapstructure:"forced_inclusion_capacity" json:"forced_inclusion_capacity"`
	} `mapstructure:"mempool" json:"mempool"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides, first overlaying a local .env file (if present) onto the
// process environment so viper.AutomaticEnv sees it. The resulting
// configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	_ = godotenv.Load() // optional; missing .env is not an error

	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the PLATARIUM_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("PLATARIUM_ENV", ""))
}
