package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/stevanpecic/Phaser/lib/ops"
	"github.com/stevanpecic/Phaser/lib/phsp"
)

// Configuration holds the optional phaser.yaml settings. The file is looked
// up at $PHASER_CONFIG, falling back to ./phaser.yaml; a missing fallback
// file just means defaults.
type Configuration struct {
	// Strict turns the declared-vs-actual file length check into a hard
	// failure instead of a warning.
	Strict bool `yaml:"strict"`
	// Buffer is the read buffer size in bytes. Zero means the 1 MiB
	// default.
	Buffer int `yaml:"buffer"`
	// LogLevel is one of logrus's level names (panic, fatal, error, warn,
	// info, debug, trace).
	LogLevel string `yaml:"loglevel"`
}

var confDefault = Configuration{
	LogLevel: "info",
}

func loadConfiguration() Configuration {
	conf := confDefault

	confPath := os.Getenv("PHASER_CONFIG")
	explicit := confPath != ""
	if !explicit { confPath = "phaser.yaml" }

	f, err := os.Open(confPath)
	if err != nil {
		if explicit {
			log.WithError(err).Fatal("could not open configuration file")
		}
		return conf
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
		log.WithError(err).Fatal("could not parse configuration file")
	}
	return conf
}

// apply installs the configuration process-wide: the log level and the
// reader options every operation uses.
func (conf Configuration) apply() {
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("unknown log level in configuration")
	}
	log.SetLevel(level)

	ops.ReaderOptions = conf.readerOptions()
}

func (conf Configuration) readerOptions() phsp.Options {
	return phsp.Options{
		StrictLength:   conf.Strict,
		BufferCapacity: conf.Buffer,
	}
}
