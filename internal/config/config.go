package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "bpplay"

// Defaults applied by the getters when a key is absent or invalid.
const (
	DefaultHistoryCapacity      = 255
	DefaultVolume               = 100
	DefaultSeekStep             = 5 * time.Second
	DefaultMaxBuffered          = 3 * time.Hour
	DefaultHintLimit            = 64
	DefaultNotificationDuration = 10 * time.Second
	DefaultRecentLimit          = 20
)

// DefaultSpeeds is the speed cycle used when none is configured.
var DefaultSpeeds = []float64{0.5, 0.75, 1.0, 1.25, 1.5}

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // where relative save paths resolve; empty means cwd

	HistoryCapacity int       `koanf:"history_capacity"` // undo steps kept (default: 255)
	DefaultVolume   *int      `koanf:"default_volume"`   // 0-100, used when no saved volume exists (default: 100)
	Speeds          []float64 `koanf:"speeds"`           // speed cycle (default: 0.5 .. 1.5)
	SeekStep        string    `koanf:"seek_step"`        // e.g. "5s"
	HintLimit       int       `koanf:"hint_limit"`       // max hint length in characters (default: 64)
	ConfirmExit     *bool     `koanf:"confirm_exit"`     // ask before quitting with unsaved edits (default: true)
	RecentLimit     int       `koanf:"recent_limit"`     // recent files remembered (default: 20)

	NotificationDuration string `koanf:"notification_duration"` // e.g. "10s"

	Audio   AudioConfig   `koanf:"audio"`
	Desktop DesktopConfig `koanf:"desktop"`
}

// AudioConfig holds decoding and output settings.
type AudioConfig struct {
	MaxBuffered string `koanf:"max_buffered"` // longest decodable source, e.g. "3h"
	Resample    *bool  `koanf:"resample"`     // resample sources to the output rate (default: true)
}

// DesktopConfig holds desktop integration settings.
type DesktopConfig struct {
	MediaControls *bool `koanf:"media_controls"` // expose playback over MPRIS (default: true)
	Notifications *bool `koanf:"notifications"`  // desktop notice when a file finishes (default: false)
}

// Load reads the config files. With an explicit path only that file is
// read and it must exist; otherwise the XDG config file and ./config.toml
// are read if present, the latter winning.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if explicit != "" {
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	} else {
		for _, path := range getConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", path, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/bpplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetHistoryCapacity returns the undo capacity with default applied.
func (c *Config) GetHistoryCapacity() int {
	if c.HistoryCapacity <= 0 {
		return DefaultHistoryCapacity
	}
	return c.HistoryCapacity
}

// GetDefaultVolume returns the startup volume clamped to 0-100.
func (c *Config) GetDefaultVolume() int {
	if c.DefaultVolume == nil {
		return DefaultVolume
	}
	return min(max(*c.DefaultVolume, 0), 100)
}

// GetSpeeds returns the configured speeds, sorted, without duplicates or
// invalid entries. Falls back to DefaultSpeeds when nothing valid remains.
func (c *Config) GetSpeeds() []float64 {
	speeds := make([]float64, 0, len(c.Speeds))
	for _, s := range c.Speeds {
		if s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s) {
			speeds = append(speeds, s)
		}
	}
	if len(speeds) == 0 {
		return slices.Clone(DefaultSpeeds)
	}
	slices.Sort(speeds)
	return slices.Compact(speeds)
}

// GetSeekStep returns the arrow-key seek step.
func (c *Config) GetSeekStep() time.Duration {
	return parseDuration(c.SeekStep, DefaultSeekStep)
}

// GetMaxBuffered returns the longest source the decoder accepts.
func (c *Config) GetMaxBuffered() time.Duration {
	return parseDuration(c.Audio.MaxBuffered, DefaultMaxBuffered)
}

// ResampleEnabled reports whether sources at another rate are resampled.
func (c *Config) ResampleEnabled() bool {
	return c.Audio.Resample == nil || *c.Audio.Resample
}

// GetHintLimit returns the hint length limit.
func (c *Config) GetHintLimit() int {
	if c.HintLimit <= 0 {
		return DefaultHintLimit
	}
	return c.HintLimit
}

// GetNotificationDuration returns how long notifications stay visible.
func (c *Config) GetNotificationDuration() time.Duration {
	return parseDuration(c.NotificationDuration, DefaultNotificationDuration)
}

// ConfirmExitEnabled reports whether quitting with unsaved edits asks first.
func (c *Config) ConfirmExitEnabled() bool {
	return c.ConfirmExit == nil || *c.ConfirmExit
}

// MediaControlsEnabled reports whether media keys and panel widgets may
// control playback.
func (c *Config) MediaControlsEnabled() bool {
	return c.Desktop.MediaControls == nil || *c.Desktop.MediaControls
}

// DesktopNotificationsEnabled reports whether finished files raise a
// desktop notification.
func (c *Config) DesktopNotificationsEnabled() bool {
	return c.Desktop.Notifications != nil && *c.Desktop.Notifications
}

// GetRecentLimit returns how many recent files are remembered.
func (c *Config) GetRecentLimit() int {
	if c.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return c.RecentLimit
}

// ResolvePath makes a relative path absolute against DefaultFolder.
func (c *Config) ResolvePath(path string) string {
	path = expandPath(path)
	if c.DefaultFolder == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DefaultFolder, path)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
