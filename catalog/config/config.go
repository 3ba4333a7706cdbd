package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"CATALOG_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"CATALOG_TIMEOUT" env-default:"5s"`
}

type ComicsConfig struct {
	BaseURL      string        `yaml:"base_url" env:"COMICS_BASE_URL" env-default:"https://run.mocky.io"`
	ResourcePath string        `yaml:"resource_path" env:"COMICS_RESOURCE_PATH" env-default:"v3/f40078b6-78be-498c-b919-e6586f3be0c0"`
	Timeout      time.Duration `yaml:"fetch_timeout" env:"FETCH_TIMEOUT" env-default:"10s"`
}

type Config struct {
	LogLevel         string       `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTPConfig       HTTPConfig   `yaml:"http_server"`
	Comics           ComicsConfig `yaml:"comics"`
	BrokerAddress    string       `yaml:"broker_address" env:"BROKER_ADDRESS"`
	ScreenRate       int          `yaml:"screen_rate" env:"SCREEN_RATE" env-default:"5"`
	WatchConcurrency int          `yaml:"watch_concurrency" env:"WATCH_CONCURRENCY" env-default:"32"`
	MaxScreens       int          `yaml:"max_screens" env:"MAX_SCREENS" env-default:"1024"`
}

// Load reads configPath, or only the environment when configPath is empty.
func Load(configPath string) (Config, error) {
	var cfg Config
	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}
	err := cleanenv.ReadConfig(configPath, &cfg)
	return cfg, err
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}
	return cfg
}
