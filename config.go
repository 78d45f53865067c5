package pricecodec

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the codec settings.
//
//	codec:
//	  min_tick: -322517
//	  max_tick: 443636
//	log:
//	  level: info
type Config struct {
	Codec Bounds `yaml:"codec"`
	Log   struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func DefaultConfig() *Config {
	cfg := &Config{Codec: DefaultBounds()}
	cfg.Log.Level = logrus.InfoLevel.String()
	return cfg
}

// LoadConfig reads a YAML config over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"config":   path,
		"min_tick": cfg.Codec.MinTick,
		"max_tick": cfg.Codec.MaxTick,
	}).Debug("loaded codec config")
	return cfg, nil
}

// NewCodec builds a codec for the configured bounds.
func (cfg *Config) NewCodec() (*Codec, error) {
	return NewCodec(cfg.Codec)
}
