package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerAddress = "127.0.0.1:8600"

type Settings struct {
	Server  ServerSettings  `toml:"server"`
	Logging LoggingSettings `toml:"logging"`
	Debug   DebugSettings   `toml:"debug"`
	UI      UISettings      `toml:"ui"`
}

type ServerSettings struct {
	Address string `toml:"address"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

type DebugSettings struct {
	StreamDebug bool `toml:"stream_debug"`
}

type UISettings struct {
	Theme string          `toml:"theme"`
	Input UIInputSettings `toml:"input"`
}

type UIInputSettings struct {
	MultilineMinHeight int `toml:"multiline_min_height"`
	MultilineMaxHeight int `toml:"multiline_max_height"`
}

func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Address: defaultServerAddress,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
		UI: UISettings{
			Theme: "dark",
			Input: UIInputSettings{
				MultilineMinHeight: 3,
				MultilineMaxHeight: 8,
			},
		},
	}
}

func LoadSettings() (Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func (s Settings) ServerAddress() string {
	if env := strings.TrimSpace(os.Getenv("LOOM_ADDRESS")); env != "" {
		return normalizeAddress(env)
	}
	return normalizeAddress(s.Server.Address)
}

func (s Settings) ServerBaseURL() string {
	return "http://" + s.ServerAddress()
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (s Settings) StreamDebugEnabled() bool {
	if strings.TrimSpace(os.Getenv("LOOM_STREAM_DEBUG")) == "1" {
		return true
	}
	return s.Debug.StreamDebug
}

func (s Settings) ThemeDark() bool {
	return strings.TrimSpace(strings.ToLower(s.UI.Theme)) != "light"
}

func (s Settings) MultilineInputHeights() (minHeight, maxHeight int) {
	minHeight = s.UI.Input.MultilineMinHeight
	maxHeight = s.UI.Input.MultilineMaxHeight
	if minHeight <= 0 {
		minHeight = 3
	}
	if maxHeight <= 0 {
		maxHeight = 8
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	return minHeight, maxHeight
}

func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func loadSettingsFromPath(path string) (Settings, error) {
	cfg := DefaultSettings()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// ResolvePath expands ~/ and resolves relative paths against the data dir.
func ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
