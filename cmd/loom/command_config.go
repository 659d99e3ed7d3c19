package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"loom/internal/config"

	toml "github.com/pelletier/go-toml/v2"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string          `json:"config_path,omitempty" toml:"config_path,omitempty"`
	Server     serverConfigOut `json:"server" toml:"server"`
	Logging    logConfigOut    `json:"logging" toml:"logging"`
	Debug      debugConfigOut  `json:"debug" toml:"debug"`
	UI         uiConfigOut     `json:"ui" toml:"ui"`
}

type serverConfigOut struct {
	Address string `json:"address" toml:"address"`
	BaseURL string `json:"base_url" toml:"base_url"`
}

type logConfigOut struct {
	Level string `json:"level" toml:"level"`
}

type debugConfigOut struct {
	StreamDebug bool `json:"stream_debug" toml:"stream_debug"`
}

type uiConfigOut struct {
	Theme              string `json:"theme" toml:"theme"`
	MultilineMinHeight int    `json:"multiline_min_height" toml:"multiline_min_height"`
	MultilineMaxHeight int    `json:"multiline_max_height" toml:"multiline_max_height"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", configFormatJSON, "output format: json or toml")
	defaults := fs.Bool("defaults", false, "print built-in defaults instead of the effective config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var settings config.Settings
	var configPath string
	if *defaults {
		settings = config.DefaultSettings()
	} else {
		loaded, err := config.LoadSettings()
		if err != nil {
			return err
		}
		settings = loaded
		if path, err := config.ConfigPath(); err == nil {
			configPath = path
		}
	}

	minH, maxH := settings.MultilineInputHeights()
	out := configOutput{
		ConfigPath: configPath,
		Server: serverConfigOut{
			Address: settings.ServerAddress(),
			BaseURL: settings.ServerBaseURL(),
		},
		Logging: logConfigOut{Level: settings.LogLevel()},
		Debug:   debugConfigOut{StreamDebug: settings.StreamDebugEnabled()},
		UI: uiConfigOut{
			Theme:              settings.UI.Theme,
			MultilineMinHeight: minH,
			MultilineMaxHeight: maxH,
		},
	}

	switch *format {
	case configFormatJSON:
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case configFormatTOML:
		return toml.NewEncoder(c.stdout).Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}
