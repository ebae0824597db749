package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/clubhub/internal/flagx"
	"github.com/dmitrijs2005/clubhub/internal/timex"
)

// FileConfig is the on-disk form of Config. Zero values leave the current
// setting unchanged.
type FileConfig struct {
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RefreshTimeout timex.Duration `json:"refresh_timeout" yaml:"refresh_timeout"`
	TokenFreshness timex.Duration `json:"token_freshness" yaml:"token_freshness"`
	StorageDriver  string         `json:"storage_driver" yaml:"storage_driver"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	RedisAddr      string         `json:"redis_addr" yaml:"redis_addr"`
	RedisDB        int            `json:"redis_db" yaml:"redis_db"`
	LoginPath      string         `json:"login_path" yaml:"login_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config in args, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.RefreshTimeout, fc.RefreshTimeout)
	setDuration(&cfg.TokenFreshness, fc.TokenFreshness)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	if fc.RedisDB != 0 {
		cfg.RedisDB = fc.RedisDB
	}
	setString(&cfg.LoginPath, fc.LoginPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
