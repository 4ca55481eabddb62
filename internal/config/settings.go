package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix is the prefix of environment variables overriding settings
const EnvPrefix = "RUNWAY_"

// Settings are the application settings shared by the CLI, server and TUI
type Settings struct {
	Log    LogSettings    `koanf:"log"`
	Server ServerSettings `koanf:"server"`
	Output OutputSettings `koanf:"output"`
}

type LogSettings struct {
	Level string `koanf:"level"`
}

type ServerSettings struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type OutputSettings struct {
	Format    string `koanf:"format"`
	Directory string `koanf:"directory"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{Level: "info"},
		Server: ServerSettings{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Output: OutputSettings{
			Format:    "console",
			Directory: ".",
		},
	}
}

// LoadSettings layers the defaults, an optional YAML file and RUNWAY_*
// environment variables, in that order. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		log.Errorf("error loading default settings: %v", err)
		return Settings{}, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Debugf("settings file not found at %s, using defaults and environment variables", path)
			} else {
				log.Errorf("error loading settings from YAML: %v", err)
				return Settings{}, err
			}
		} else {
			log.Debugf("loaded settings from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// RUNWAY_SERVER_READ_TIMEOUT -> server.read_timeout
			k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
			section, rest, found := strings.Cut(k, "_")
			if !found {
				return k, v
			}
			return section + "." + rest, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading settings from environment: %v", err)
		return Settings{}, err
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ConfigureLogging applies the log level setting to the standard logrus logger
func ConfigureLogging(s Settings) {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", s.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
