package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration, loaded from configs/config.yaml
// with environment-variable overrides. Components receive the values they
// need through their constructors; nothing reads configuration globally.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Site struct {
		// Domain is the serving domain, used to classify internal referers.
		Domain string `mapstructure:"domain"`
		// HomeURL is the fallback redirect target for unknown slugs.
		HomeURL string `mapstructure:"home_url"`
	} `mapstructure:"site"`

	Store struct {
		URL            string `mapstructure:"url"`
		APIKey         string `mapstructure:"api_key"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"store"`

	Cache struct {
		// RedisAddr enables the link cache when non-empty.
		RedisAddr  string `mapstructure:"redis_addr"`
		TTLSeconds int    `mapstructure:"ttl_seconds"`
	} `mapstructure:"cache"`

	Edge struct {
		IPHeader      string `mapstructure:"ip_header"`
		CountryHeader string `mapstructure:"country_header"`
	} `mapstructure:"edge"`

	Pipeline struct {
		DatabaseURL string `mapstructure:"database_url"`
		SiteDir     string `mapstructure:"site_dir"`
		TrackerPath string `mapstructure:"tracker_path"`

		IndexNow struct {
			Endpoint     string `mapstructure:"endpoint"`
			Key          string `mapstructure:"key"`
			SnapshotPath string `mapstructure:"snapshot_path"`
		} `mapstructure:"indexnow"`
	} `mapstructure:"pipeline"`
}

// Load reads the configuration from ./configs/config.yaml, environment
// variables (SERVER_PORT, STORE_API_KEY, ...), and defaults, in that
// precedence order. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AddConfigPath("./configs")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 8080)
	v.SetDefault("site.domain", "knowledgelib.io")
	v.SetDefault("site.home_url", "https://knowledgelib.io/")
	v.SetDefault("store.url", "")
	v.SetDefault("store.api_key", "")
	v.SetDefault("store.timeout_seconds", 5)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("edge.ip_header", "CF-Connecting-IP")
	v.SetDefault("edge.country_header", "CF-IPCountry")
	v.SetDefault("pipeline.database_url", "")
	v.SetDefault("pipeline.site_dir", "./site")
	v.SetDefault("pipeline.tracker_path", "./site/tracker.md")
	v.SetDefault("pipeline.indexnow.endpoint", "https://api.indexnow.org/indexnow")
	v.SetDefault("pipeline.indexnow.key", "")
	v.SetDefault("pipeline.indexnow.snapshot_path", "./site/.indexnow_last_urls.json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
