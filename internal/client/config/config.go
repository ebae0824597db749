package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/clubhub/internal/client/storage"
)

// Config holds runtime settings for the clubhub CLI.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
	TokenFreshness time.Duration

	StorageDriver string
	DatabasePath  string
	RedisAddr     string
	RedisDB       int

	LoginPath string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.RefreshTimeout = 10 * time.Second
	c.TokenFreshness = 15 * time.Minute
	c.StorageDriver = storage.DriverSQLite
	c.DatabasePath = "clubhub.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.LoginPath = "/login.html"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// StorageOptions maps the storage settings onto storage.Options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:       c.StorageDriver,
		DatabasePath: c.DatabasePath,
		RedisAddr:    c.RedisAddr,
		RedisDB:      c.RedisDB,
	}
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the config file named in args, then the flags
// in args. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
