package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type LevelList []logrus.Level

func (a LevelList) MarshalText() ([]byte, error) {
	if len(a) == 0 {
		return []byte("-"), nil
	}

	var s string

	for i, e := range a {
		if i != 0 {
			s += ","
		}

		s += e.String()
	}

	return []byte(s), nil
}

func (a *LevelList) UnmarshalText(d []byte) error {
	if string(d) == "" || string(d) == "-" {
		*a = LevelList{}
		return nil
	}

	var aa LevelList

	for _, e := range strings.Split(string(d), ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		l, err := logrus.ParseLevel(e)
		if err != nil {
			return fmt.Errorf("config.LevelList.UnmarshalText: could not parse value as logrus level: %w", err)
		}

		aa = append(aa, l)
	}

	*a = aa

	return nil
}

// Duration exists so durations can round-trip through config files, flags,
// and environment variables as strings like "24h".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("config.Duration.UnmarshalText: could not parse value as duration: %w", err)
	}

	*d = Duration(v)

	return nil
}

type Config struct {
	Config          string       `name:"config" toml:"config" yaml:"config" help:"Config file location."`
	LogLevel        logrus.Level `name:"log_level" toml:"log_level" yaml:"log_level" help:"Global log level."`
	LogDebugLevels  LevelList    `name:"log_debug_levels" toml:"log_debug_levels" yaml:"log_debug_levels" help:"Which log levels to include stack data on."`
	APIKey          string       `name:"api_key" toml:"api_key" yaml:"api_key" help:"Video platform API key. Required."`
	Addr            string       `name:"addr" toml:"addr" yaml:"addr" help:"Address to listen on."`
	CachePath       string       `name:"cache_path" toml:"cache_path" yaml:"cache_path" help:"Location for the HTTP response cache."`
	CacheMaxAge     Duration     `name:"cache_max_age" toml:"cache_max_age" yaml:"cache_max_age" help:"How long cached API responses stay fresh."`
	Minify          bool         `name:"minify" toml:"minify" yaml:"minify" help:"Minify HTML/CSS output."`
	DefaultChannels string       `name:"default_channels" toml:"default_channels" yaml:"default_channels" help:"Channel IDs to pre-fill the analysis form with."`
}
