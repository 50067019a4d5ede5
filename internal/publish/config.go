package publish

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every publish environment variable.
const EnvPrefix = "WGTSRNA_PUBLISH"

// Config is the asset bucket configuration, read from the environment.
type Config struct {
	Endpoint     string `envconfig:"ENDPOINT" default:"s3.amazonaws.com"`
	Region       string `envconfig:"REGION" default:"ap-southeast-2"`
	UseSSL       bool   `envconfig:"USE_SSL" default:"true"`
	Bucket       string `envconfig:"BUCKET"`
	Prefix       string `envconfig:"PREFIX" default:"deployment-definitions"`
	AccessKey    string `envconfig:"ACCESS_KEY"`
	SecretKey    string `envconfig:"SECRET_KEY"`
	SessionToken string `envconfig:"SESSION_TOKEN"`
	Concurrency  int    `envconfig:"CONCURRENCY" default:"4"`
}

// ConfigFromEnv reads and validates the configuration.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("access key and secret key must be set together")
	}
	return nil
}
