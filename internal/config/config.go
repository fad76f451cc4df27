package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env-default:"8080"`
	Redis    Redis    `yaml:"redis"`
	Battle   Battle   `yaml:"battle"`
	Opponent Opponent `yaml:"opponent"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Battle struct {
	MaxSessions        int           `yaml:"max-sessions" env-default:"100"`
	SessionIdleTimeout time.Duration `yaml:"session-idle-timeout" env-default:"30m"`
	SweepInterval      time.Duration `yaml:"sweep-interval" env-default:"5m"`
}

type Opponent struct {
	Primary          string        `yaml:"primary" env-default:"local"`
	Secondary        string        `yaml:"secondary"`
	FastMode         bool          `yaml:"fast-mode"`
	AttemptTimeout   time.Duration `yaml:"attempt-timeout" env-default:"5s"`
	MaxRetryAttempts int           `yaml:"max-retry-attempts" env-default:"3"`
	RetryDelay       time.Duration `yaml:"retry-delay" env-default:"1s"`
	EnableFallback   bool          `yaml:"enable-fallback" env-default:"true"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
