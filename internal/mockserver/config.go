package mockserver

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/clubhub/internal/flagx"
	"github.com/dmitrijs2005/clubhub/internal/timex"
)

// Config holds runtime settings for the mock backend.
//
// SigningKey is the HS256 secret for access tokens; the default is for local
// development only.
type Config struct {
	Addr       string
	SigningKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int

	// UploadDir receives uploaded images; empty discards them.
	UploadDir string

	LogLevel  string
	LogFormat string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SigningKey = "clubhub-dev-secret"
	c.AccessTTL = 5 * time.Minute
	c.RefreshTTL = 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.UploadDir = "uploads"
	c.LogLevel = "info"
	c.LogFormat = "zap"
}

type fileConfig struct {
	Addr       string         `json:"addr" yaml:"addr"`
	SigningKey string         `json:"signing_key" yaml:"signing_key"`
	AccessTTL  timex.Duration `json:"access_ttl" yaml:"access_ttl"`
	RefreshTTL timex.Duration `json:"refresh_ttl" yaml:"refresh_ttl"`
	UploadDir  string         `json:"upload_dir" yaml:"upload_dir"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
	LogFormat  string         `json:"log_format" yaml:"log_format"`
}

// LoadConfig applies defaults, the optional -c/-config file and the flags
// -a, -k, -u, -access-ttl and -refresh-ttl, in that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet("mockserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SigningKey, "k", cfg.SigningKey, "access token signing key")
	fs.StringVar(&cfg.UploadDir, "u", cfg.UploadDir, "upload directory")
	fs.DurationVar(&cfg.AccessTTL, "access-ttl", cfg.AccessTTL, "access token lifetime")
	fs.DurationVar(&cfg.RefreshTTL, "refresh-ttl", cfg.RefreshTTL, "refresh token lifetime")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-k", "-u", "-access-ttl", "-refresh-ttl"})); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.SigningKey != "" {
		c.SigningKey = fc.SigningKey
	}
	if fc.AccessTTL.Duration > 0 {
		c.AccessTTL = fc.AccessTTL.Duration
	}
	if fc.RefreshTTL.Duration > 0 {
		c.RefreshTTL = fc.RefreshTTL.Duration
	}
	if fc.UploadDir != "" {
		c.UploadDir = fc.UploadDir
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	return nil
}
