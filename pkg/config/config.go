// Package config holds the parameters of a generation run. The defaults are
// compile-time constants; a YAML file can override any of them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dd0wney/cluso-fraudgen/pkg/generator"
	"github.com/dd0wney/cluso-fraudgen/pkg/logging"
	"github.com/dd0wney/cluso-fraudgen/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Compression modes for the directory sink.
const (
	CompressionNone   = "none"
	CompressionSnappy = "snappy"
)

// DefaultOutputDir is where the three tables land when nothing else is configured.
const DefaultOutputDir = "data/raw"

// Config is the full set of run parameters.
type Config struct {
	Accounts        int                     `yaml:"accounts" validate:"gte=0"`
	Transactions    int                     `yaml:"transactions" validate:"gte=0"`
	FraudRatio      float64                 `yaml:"fraud_ratio" validate:"gte=0,lte=1"`
	Countries       []string                `yaml:"countries" validate:"required,dive,country"`
	SuspiciousPairs []generator.CountryPair `yaml:"suspicious_pairs" validate:"required,dive"`
	Seed            uint64                  `yaml:"seed"`
	LogLevel        string                  `yaml:"log_level"`

	Output   OutputConfig   `yaml:"output"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// OutputConfig controls the local directory sink and run artifacts.
type OutputConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	Compression string `yaml:"compression" validate:"oneof=none snappy"`
	// Manifest writes manifest.yaml with per-table checksums next to the tables.
	Manifest bool `yaml:"manifest"`
	// MetricsFile, when set, receives the run's metrics in Prometheus text format.
	MetricsFile string `yaml:"metrics_file"`
}

// S3Config uploads the tables to an S3-compatible bucket in addition to the directory.
type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// PostgresConfig copies the tables into PostgreSQL in addition to the directory.
type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Schema  string `yaml:"schema"`
	// MaxConns caps the connection pool; tables are copied one at a time.
	MaxConns int `yaml:"max_conns"`
}

// Default returns the stock run parameters.
func Default() *Config {
	return &Config{
		Accounts:        generator.DefaultAccounts,
		Transactions:    generator.DefaultTransactions,
		FraudRatio:      generator.DefaultFraudRatio,
		Countries:       generator.DefaultCountries(),
		SuspiciousPairs: generator.DefaultSuspiciousPairs(),
		Seed:            generator.DefaultSeed,
		Output: OutputConfig{
			Dir:         DefaultOutputDir,
			Compression: CompressionNone,
		},
		Postgres: PostgresConfig{Schema: "public", MaxConns: 2},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults unchanged. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks struct tags first and then the cross-field rules. Every
// cross-field violation is reported.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cv := validation.NewConfigValidator("config")
	cv.NonNegative("accounts", c.Accounts).
		NonNegative("transactions", c.Transactions).
		RangeFloat("fraud_ratio", c.FraudRatio, 0, 1).
		NonEmpty("countries", len(c.Countries)).
		NonEmpty("suspicious_pairs", len(c.SuspiciousPairs)).
		Custom("suspicious_pairs", c.checkPairs).
		When(c.LogLevel != "", func(v *validation.ConfigValidator) {
			v.Custom("log_level", func() error {
				if _, ok := logging.ParseLevel(c.LogLevel); !ok {
					return fmt.Errorf("unknown level %q", c.LogLevel)
				}
				return nil
			})
		}).
		OneOf("output.compression", c.Output.Compression, []string{CompressionNone, CompressionSnappy}).
		When(c.S3.Enabled, func(v *validation.ConfigValidator) {
			v.Required("s3.bucket", c.S3.Bucket).
				Custom("s3.credentials", func() error {
					if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
						return errors.New("access_key_id and secret_access_key must be set together")
					}
					return nil
				})
		}).
		When(c.Postgres.Enabled, func(v *validation.ConfigValidator) {
			v.Required("postgres.url", c.Postgres.URL).
				MinInt("postgres.max_conns", c.Postgres.MaxConns, 1).
				Custom("postgres.schema", func() error {
					return validation.Identifier(c.Postgres.Schema)
				})
		})

	if err := cv.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) checkPairs() error {
	for i, p := range c.SuspiciousPairs {
		if err := validation.CountryCode(p.Source); err != nil {
			return fmt.Errorf("pair %d source: %w", i, err)
		}
		if err := validation.CountryCode(p.Destination); err != nil {
			return fmt.Errorf("pair %d destination: %w", i, err)
		}
	}
	return nil
}

// GeneratorOptions maps the configured country sets onto sampler options.
// The remaining distributions keep their defaults.
func (c *Config) GeneratorOptions() generator.Options {
	opts := generator.DefaultOptions()
	opts.Countries = slices.Clone(c.Countries)
	opts.SuspiciousPairs = slices.Clone(c.SuspiciousPairs)
	return opts
}

// Snappy reports whether the directory sink compresses its tables.
func (c *Config) Snappy() bool {
	return c.Output.Compression == CompressionSnappy
}
