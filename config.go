package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// config collects the command line settings, which may also be loaded from a
// TOML file like:
//
//	timeout = "30s"
//	trace = false
//	base = 10
//	field-limit = 4096
//	prompt = true
//	preload = ["lib/core.f"]
//
// Flags given explicitly on the command line override the file.
type config struct {
	Timeout    duration `toml:"timeout"`
	Trace      bool     `toml:"trace"`
	Base       int      `toml:"base"`
	FieldLimit int      `toml:"field-limit"`
	Prompt     bool     `toml:"prompt"`
	Dump       bool     `toml:"dump"`
	Console    bool     `toml:"console"`
	Preload    []string `toml:"preload"`
}

// duration reads a time.Duration from a TOML string like "1m30s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

var defaultConfig = config{
	Base:    10,
	Console: true,
}

// loadConfigFile decodes a TOML config file over cfg; keys that match no
// setting are an error, so that typos are not silently ignored.
func loadConfigFile(cfg *config, name string) error {
	md, err := toml.DecodeFile(name, cfg)
	if err != nil {
		return fmt.Errorf("failed to load config %v: %w", name, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, key := range keys {
			names[i] = key.String()
		}
		return fmt.Errorf("unknown keys in config %v: %v", name, strings.Join(names, ", "))
	}
	return nil
}

// parseConfig parses command line arguments: any -config file is loaded
// first, then explicitly set flags are applied over it. Positional
// arguments name further files to preload before standard input.
func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	cfg := defaultConfig

	var (
		configFile string
		flags      = defaultConfig
	)
	fs.StringVar(&configFile, "config", "", "load settings from a TOML file")
	fs.DurationVar(&flags.Timeout.Duration, "timeout", 0, "specify a time limit")
	fs.BoolVar(&flags.Trace, "trace", false, "enable trace logging")
	fs.IntVar(&flags.Base, "base", flags.Base, "initial number base")
	fs.IntVar(&flags.FieldLimit, "field-limit", 0, "limit the total number of allotted data fields")
	fs.BoolVar(&flags.Prompt, "prompt", false, "print an ok prompt after each line")
	fs.BoolVar(&flags.Dump, "dump", false, "dump the dictionary to stderr after the session")
	fs.BoolVar(&flags.Console, "console", flags.Console, "use a line editing console when stdin is a terminal")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configFile != "" {
		if err := loadConfigFile(&cfg, configFile); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "trace":
			cfg.Trace = flags.Trace
		case "base":
			cfg.Base = flags.Base
		case "field-limit":
			cfg.FieldLimit = flags.FieldLimit
		case "prompt":
			cfg.Prompt = flags.Prompt
		case "dump":
			cfg.Dump = flags.Dump
		case "console":
			cfg.Console = flags.Console
		}
	})
	cfg.Preload = append(cfg.Preload, fs.Args()...)

	return cfg, cfg.validate()
}

var errConfigBase = errors.New("base must be within 2..36")

func (cfg config) validate() error {
	if err := checkBase(cfg.Base); err != nil {
		return fmt.Errorf("%w: %v", errConfigBase, err)
	}
	if cfg.FieldLimit < 0 {
		return fmt.Errorf("field-limit must not be negative, got %v", cfg.FieldLimit)
	}
	if cfg.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", cfg.Timeout)
	}
	return nil
}

// options returns the VM options implied by cfg, other than input and output
// streams which main wires up itself.
func (cfg config) options() []VMOption {
	opts := []VMOption{
		WithBase(cfg.Base),
		WithPrompt(cfg.Prompt),
	}
	if cfg.FieldLimit > 0 {
		opts = append(opts, WithFieldLimit(cfg.FieldLimit))
	}
	return opts
}
