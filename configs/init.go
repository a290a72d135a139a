package configs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type configs struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Logs     LogsConfig     `mapstructure:"logs"`
	Secrets  Secrets        `mapstructure:"secrets"`
}

// Configs holds the loaded configuration for the whole process.
var Configs configs

// Init loads configuration from the given YAML file, with environment
// overrides under the LISTLOOP_ prefix, then builds the process logger.
func Init(configPath *string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LISTLOOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != nil && *configPath != "" {
		v.SetConfigFile(*configPath)
	} else {
		v.SetConfigName("listloop")
		v.AddConfigPath("configs/file")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := v.Unmarshal(&Configs); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return InitLogger()
}
