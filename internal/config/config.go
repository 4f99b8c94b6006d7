package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultLanguage      = "en"
	defaultSampleRate    = 16000
	defaultFrameMS       = 20
	defaultStateDirLinux = ".local/state/voxnote"
	defaultConfigDir     = ".config/voxnote"
)

// Config holds user configuration loaded from TOML.
type Config struct {
	Audio struct {
		DeviceName string `toml:"device_name"`
		SampleRate int    `toml:"sample_rate"`
		Channels   int    `toml:"channels"`
		FrameMS    int    `toml:"frame_ms"`
	} `toml:"audio"`

	VAD struct {
		TrimSilence    bool `toml:"trim_silence"`
		Aggressiveness int  `toml:"aggressiveness"`
	} `toml:"vad"`

	ASR struct {
		Provider string `toml:"provider"` // gemini, openai
		Model    string `toml:"model"`
		APIKey   string `toml:"api_key"` // falls back to GEMINI_API_KEY / OPENAI_API_KEY
	} `toml:"asr"`

	UI struct {
		Lang string `toml:"lang"` // persisted language preference: en, ar
	} `toml:"ui"`

	Hook struct {
		Command    string            `toml:"command"`
		Args       []string          `toml:"args"`
		TimeoutSec float64           `toml:"timeout_sec"`
		Env        map[string]string `toml:"env"`
	} `toml:"hook"`

	Logging struct {
		Level  string `toml:"level"`  // debug, info, warn, error
		Format string `toml:"format"` // text, json
		Stdout bool   `toml:"stdout"`
	} `toml:"logging"`

	Paths struct {
		StateDir   string `toml:"state_dir"`
		LogPath    string `toml:"log_path"`
		ClipDir    string `toml:"clip_dir"`
		SocketPath string `toml:"socket_path"`
		PidPath    string `toml:"pid_path"`
		ConfigPath string `toml:"-"`
	} `toml:"paths"`

	Metrics struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"metrics"`
}

// Default returns Config populated with defaults.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateDir := filepath.Join(home, defaultStateDirLinux)
	// macOS prefers ~/Library/Application Support/voxnote for state/logs
	if isMac() {
		stateDir = filepath.Join(home, "Library", "Application Support", "voxnote")
	}

	cfg := &Config{}

	cfg.Audio.SampleRate = defaultSampleRate
	cfg.Audio.Channels = 1
	cfg.Audio.FrameMS = defaultFrameMS

	cfg.VAD.TrimSilence = false
	cfg.VAD.Aggressiveness = 2

	cfg.ASR.Provider = "gemini"
	cfg.ASR.Model = "gemini-1.5-flash"

	cfg.UI.Lang = DefaultLanguage

	cfg.Hook.Command = ""
	cfg.Hook.Args = []string{}
	cfg.Hook.TimeoutSec = 5
	cfg.Hook.Env = map[string]string{}

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"

	cfg.Paths.StateDir = stateDir
	cfg.Paths.LogPath = filepath.Join(stateDir, "voxnote.log")
	cfg.Paths.ClipDir = filepath.Join(stateDir, "clips")
	cfg.Paths.SocketPath = filepath.Join(stateDir, "voxnote.sock")
	cfg.Paths.PidPath = filepath.Join(stateDir, "voxnote.pid")

	cfg.Metrics.Enabled = false
	cfg.Metrics.Addr = "127.0.0.1:9331"

	return cfg, nil
}

// Load loads config from file, applying defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, defaultConfigDir, "config.toml")
	}

	// Read if exists; otherwise write template.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, err
			}
			if err := Save(cfg, path); err != nil {
				return nil, err
			}
			cfg.Paths.ConfigPath = path
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Paths.ConfigPath = path
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

func isMac() bool {
	return runtime.GOOS == "darwin"
}

// MustStatePaths ensures state dirs exist.
func MustStatePaths(cfg *Config) error {
	for _, p := range []string{cfg.Paths.StateDir, filepath.Dir(cfg.Paths.LogPath), cfg.Paths.ClipDir} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VOXNOTE_LANG"); v != "" {
		cfg.UI.Lang = strings.ToLower(v)
	}
	if v := os.Getenv("VOXNOTE_PROVIDER"); v != "" {
		cfg.ASR.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("VOXNOTE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
	if v := os.Getenv("VOXNOTE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VOXNOTE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// APIKey resolves the service key: explicit config first, then the
// conventional env var for the selected provider.
func (c *Config) APIKey() string {
	if c.ASR.APIKey != "" {
		return c.ASR.APIKey
	}
	switch c.ASR.Provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
