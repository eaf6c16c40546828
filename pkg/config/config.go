// Package config loads and validates the pgcarve project configuration:
// how to reach PostgreSQL and which tables are partitioned, by what key,
// and at what cadence.
package config

import (
	"io"
	"os"

	"github.com/pgcarve/pgcarve/pkg/consts"
	"github.com/pgcarve/pgcarve/pkg/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Postgres holds connection settings for the target server.
	Postgres struct {
		// DSN is the connection string, in URL or key/value form. When
		// empty, the PGCARVE_DSN environment variable is consulted, and
		// failing that lib/pq's own PG* environment handling applies.
		DSN string `yaml:"dsn,omitempty"`
	}

	// Table describes one partitioned table to maintain.
	Table struct {
		// Table is the parent table name.
		Table string `yaml:"table"`

		// PrimaryKey is the primary-key field name (default "id").
		PrimaryKey string `yaml:"primary_key,omitempty"`

		// Key is the partitioning key: field names in order. Time-based
		// maintenance requires exactly one timestamp field here.
		Key []string `yaml:"key"`

		// Interval is the partition cadence: yearly, monthly, weekly, or
		// daily (default monthly).
		Interval string `yaml:"interval,omitempty"`

		// IntervalCount multiplies the interval, e.g. interval=month with
		// interval_count=3 for quarterly partitions (default 1).
		IntervalCount int `yaml:"interval_count,omitempty"`

		// Count is how many partitions to keep ahead, including the
		// current period (default 4).
		Count int `yaml:"count,omitempty"`

		// Retention is how many past periods to keep. Zero means never
		// delete.
		Retention int `yaml:"retention,omitempty"`

		// Default controls whether a catch-all default partition is
		// maintained alongside the timed ones.
		Default bool `yaml:"default,omitempty"`
	}

	// Config is the full project configuration.
	Config struct {
		Postgres Postgres `yaml:"postgres"`
		Tables   []Table  `yaml:"tables"`
	}
)

const (
	// DefaultInterval is used when a table omits its cadence.
	DefaultInterval = "monthly"

	// DefaultCount is how many partitions are kept ahead when unset.
	DefaultCount = 4

	// DefaultPrimaryKey is the primary-key field name when unset.
	DefaultPrimaryKey = "id"
)

// LoadConfig parses a project configuration from the provided io.Reader,
// applies defaults, and validates it.
//
// Example:
//
//	yamlData := `
//	postgres:
//	  dsn: postgres://localhost:5432/app?sslmode=disable
//	tables:
//	  - table: measurements
//	    key: [recorded_at]
//	    interval: monthly
//	    count: 12
//	    retention: 6
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//	    panic(err)
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Postgres.DSN == "" {
		cfg.Postgres.DSN = os.Getenv(consts.EnvDSN)
	}

	for i := range cfg.Tables {
		applyTableDefaults(&cfg.Tables[i])
		if err := validateTable(&cfg.Tables[i]); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

func applyTableDefaults(t *Table) {
	if t.PrimaryKey == "" {
		t.PrimaryKey = DefaultPrimaryKey
	}
	if t.Interval == "" {
		t.Interval = DefaultInterval
	}
	if t.IntervalCount < 1 {
		t.IntervalCount = 1
	}
	if t.Count < 1 {
		t.Count = DefaultCount
	}
}

func validateTable(t *Table) error {
	if err := utils.ValidateIdentifier(t.Table); err != nil {
		return errors.Wrap(err, "invalid table name")
	}

	if len(t.Key) == 0 {
		return errors.Errorf("table %q has no partitioning key", t.Table)
	}

	if len(t.Key) > 1 {
		return errors.Errorf("table %q: time-based maintenance supports a single-field key", t.Table)
	}

	if t.Retention < 0 {
		return errors.Errorf("table %q has a negative retention", t.Table)
	}

	return nil
}
