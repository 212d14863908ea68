package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	AI struct {
		Model           string  `mapstructure:"model"`
		Temperature     float32 `mapstructure:"temperature"`
		TopP            float32 `mapstructure:"topP"`
		TopK            float32 `mapstructure:"topK"`
		MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
	} `mapstructure:"ai"`
	Cache struct {
		TTL             time.Duration `mapstructure:"ttl"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"cache"`
	Geocode struct {
		BaseURL string        `mapstructure:"baseURL"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"geocode"`
	Maps struct {
		EmbedBaseURL   string `mapstructure:"embedBaseURL"`
		PlaceholderURL string `mapstructure:"placeholderURL"`
	} `mapstructure:"maps"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
