package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"pkt.systems/notetex"
)

// fileConfig holds document defaults. A document head still wins over
// anything set here.
type fileConfig struct {
	Title         string   `yaml:"title"`
	Author        string   `yaml:"author"`
	Date          *string  `yaml:"date"`
	DocumentClass string   `yaml:"documentclass"`
	Packages      []string `yaml:"packages"`
	Wrap          int      `yaml:"wrap"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notetex", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if cfg.Wrap < 0 {
		return cfg, errors.Errorf("parse %s: wrap must not be negative", path)
	}
	log.WithField("path", path).Debug("Loaded config")
	return cfg, nil
}

func (c fileConfig) options() []notetex.Option {
	var opts []notetex.Option
	if c.Title != "" {
		opts = append(opts, notetex.WithTitle(c.Title))
	}
	if c.Author != "" {
		opts = append(opts, notetex.WithAuthor(c.Author))
	}
	if c.Date != nil {
		opts = append(opts, notetex.WithDate(*c.Date))
	}
	if c.DocumentClass != "" {
		opts = append(opts, notetex.WithDocumentClass(c.DocumentClass))
	}
	if len(c.Packages) > 0 {
		opts = append(opts, notetex.WithPackages(c.Packages...))
	}
	if c.Wrap > 0 {
		opts = append(opts, notetex.WithWrapWidth(c.Wrap))
	}
	return opts
}
