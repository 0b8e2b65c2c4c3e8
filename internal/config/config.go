// Package config loads the command line settings from dotenv files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/askiada/go-dws/pkg/transport"
)

const (
	DotEnvFileName  = ".env"
	AppDirName      = "nutrient-dws"
	UserEnvFileName = "config.env"
)

// Config holds the settings read from the environment.
type Config struct {
	APIKey     string `env:"NUTRIENT_API_KEY"`
	BaseURL    string `env:"NUTRIENT_BASE_URL,default=https://api.pspdfkit.com"`
	TimeoutSec int    `env:"NUTRIENT_TIMEOUT,default=300"`
	Debug      string `env:"DEBUG,default=0"`
}

// EnvFiles returns the dotenv files read by Load, by decreasing priority:
// the one of the working directory, then the user configuration file.
func EnvFiles(pwd string) []string {
	return []string{
		filepath.Join(pwd, DotEnvFileName),
		filepath.Join(xdg.ConfigHome, AppDirName, UserEnvFileName),
	}
}

// Load applies the dotenv files found on fs, then reads the environment.
// Variables already set in the environment are never overridden by a dotenv file.
func Load(fs afero.Fs, pwd string) (*Config, error) {
	for _, path := range EnvFiles(pwd) {
		err := loadEnvFile(fs, path)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}

	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to read environment")
	}

	return cfg, nil
}

func loadEnvFile(fs afero.Fs, path string) error {
	file, err := fs.Open(path)
	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	values, err := godotenv.Parse(file)
	if err != nil {
		return errors.Wrapf(err, "unable to parse %s", path)
	}

	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}

		err := os.Setenv(key, value)
		if err != nil {
			return errors.Wrapf(err, "unable to set %s", key)
		}
	}

	return nil
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.Debug == "1" || strings.EqualFold(c.Debug, "true")
}

// Transport returns the transport settings.
func (c *Config) Transport() transport.Config {
	return transport.Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: time.Duration(c.TimeoutSec) * time.Second,
	}
}
