package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

var defaults = Config{
	Port: 9011,
	Feeds: Feeds{
		DataUrl:       "https://data.geo.admin.ch/ch.bfe.ladestellen-elektromobilitaet/data/oicp/ch.bfe.ladestellen-elektromobilitaet.json",
		StatusUrl:     "https://data.geo.admin.ch/ch.bfe.ladestellen-elektromobilitaet/status/oicp/ch.bfe.ladestellen-elektromobilitaet.json",
		StatusTimeout: 10,
	},
	Database: Database{
		Addr:    "127.0.0.1:3306",
		MaxPool: 20,
	},
	Poller: Poller{
		Interval:   60,
		RunMinutes: 60,
	},
	Logging: Logging{
		SaveLogs:   true,
		MaxSize:    50,
		MaxBackups: 10,
		MaxAge:     30,
	},
	Sentry: Sentry{
		SampleRate:       1.0,
		TracesSampleRate: 1.0,
	},
	Pyroscope: Pyroscope{
		ApplicationName:      "chargewatch",
		MutexProfileFraction: 5,
		BlockProfileRate:     5,
	},
}

// ReadConfig loads the TOML config at path on top of the built-in defaults.
func ReadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	return cfg, nil
}
