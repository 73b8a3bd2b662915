package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Mailer   *mailerConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"nichehire"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	MetricsAddress   string        `envconfig:"NICHEHIRE_METRICS_ADDRESS" default:":8080"`
	LogLevel         string        `envconfig:"NICHEHIRE_LOG_LEVEL" default:"info"`
	MatchingInterval time.Duration `envconfig:"NICHEHIRE_MATCHING_INTERVAL" default:"10m"`
}

type mailerConfig struct {
	SMTPHost string `envconfig:"NICHEHIRE_SMTP_HOST" default:""`
	SMTPPort int    `envconfig:"NICHEHIRE_SMTP_PORT" default:"587"`
	User     string `envconfig:"NICHEHIRE_SMTP_USER" default:""`
	Password string `envconfig:"NICHEHIRE_SMTP_PASS" default:""`
	From     string `envconfig:"NICHEHIRE_SMTP_FROM" default:"no-reply@nichehire.local"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config backed by an in-memory sqlite database. Used by
// the test suites.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			// shared cache so every pooled connection sees the same database
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			MetricsAddress:   ":8080",
			LogLevel:         "info",
			MatchingInterval: 10 * time.Minute,
		},
		Mailer: &mailerConfig{
			From: "no-reply@nichehire.local",
		},
	}
}
