package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the full runtime configuration, loaded from an optional config
// file and NEURALBG_* environment variables on top of the package defaults.
type Settings struct {
	Window WindowSettings `mapstructure:"window"`
	Graph  GraphSettings  `mapstructure:"graph"`
	Toast  ToastSettings  `mapstructure:"toast"`
	Theme  ThemeSettings  `mapstructure:"theme"`
	Log    LogSettings    `mapstructure:"log"`
}

type WindowSettings struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type GraphSettings struct {
	Particles        int     `mapstructure:"particles"`
	Radius           float64 `mapstructure:"radius"`
	Speed            float64 `mapstructure:"speed"`
	ConnectionRadius float64 `mapstructure:"connection_radius"`
	LineAlpha        float64 `mapstructure:"line_alpha"`
	LineWidth        float64 `mapstructure:"line_width"`
	Glow             bool    `mapstructure:"glow"`
	Seed             uint64  `mapstructure:"seed"`
}

type ToastSettings struct {
	EnterDelay   time.Duration `mapstructure:"enter_delay"`
	Duration     time.Duration `mapstructure:"duration"`
	ExitDuration time.Duration `mapstructure:"exit_duration"`
	MaxToasts    int           `mapstructure:"max_toasts"`
	Welcome      bool          `mapstructure:"welcome"`
	Desktop      bool          `mapstructure:"desktop"`
	Sound        bool          `mapstructure:"sound"`
}

type ThemeSettings struct {
	// Force is "dark", "light" or empty to use the stored preference.
	Force     string `mapstructure:"force"`
	PrefsFile string `mapstructure:"prefs_file"`
	Persist   bool   `mapstructure:"persist"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "LLM Guide - D: theme, N: notify, Space: pause, Esc/Q: quit",
		},
		Graph: GraphSettings{
			Particles:        ParticleCount,
			Radius:           ParticleRadius,
			Speed:            ParticleSpeed,
			ConnectionRadius: ConnectionRadius,
			LineAlpha:        LineAlpha,
			LineWidth:        LineWidth,
		},
		Toast: ToastSettings{
			EnterDelay:   ToastEnterDelay,
			Duration:     ToastDuration,
			ExitDuration: ToastExitDuration,
			MaxToasts:    MaxToasts,
			Welcome:      true,
		},
		Theme: ThemeSettings{
			Persist: true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// SetDefaults registers every default on v so that env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("graph.particles", d.Graph.Particles)
	v.SetDefault("graph.radius", d.Graph.Radius)
	v.SetDefault("graph.speed", d.Graph.Speed)
	v.SetDefault("graph.connection_radius", d.Graph.ConnectionRadius)
	v.SetDefault("graph.line_alpha", d.Graph.LineAlpha)
	v.SetDefault("graph.line_width", d.Graph.LineWidth)
	v.SetDefault("graph.glow", d.Graph.Glow)
	v.SetDefault("graph.seed", d.Graph.Seed)
	v.SetDefault("toast.enter_delay", d.Toast.EnterDelay)
	v.SetDefault("toast.duration", d.Toast.Duration)
	v.SetDefault("toast.exit_duration", d.Toast.ExitDuration)
	v.SetDefault("toast.max_toasts", d.Toast.MaxToasts)
	v.SetDefault("toast.welcome", d.Toast.Welcome)
	v.SetDefault("toast.desktop", d.Toast.Desktop)
	v.SetDefault("toast.sound", d.Toast.Sound)
	v.SetDefault("theme.force", d.Theme.Force)
	v.SetDefault("theme.prefs_file", d.Theme.PrefsFile)
	v.SetDefault("theme.persist", d.Theme.Persist)
	v.SetDefault("log.level", d.Log.Level)
}

// New returns a viper instance with defaults and the NEURALBG_ env prefix wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into v and decodes the result.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

var ErrInvalidSettings = errors.New("invalid settings")

// Validate rejects values the renderer and queue cannot work with.
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	case s.Graph.Particles < 0:
		return fmt.Errorf("%w: graph.particles must not be negative", ErrInvalidSettings)
	case s.Graph.ConnectionRadius < 0:
		return fmt.Errorf("%w: graph.connection_radius must not be negative", ErrInvalidSettings)
	case s.Toast.MaxToasts < 0:
		return fmt.Errorf("%w: toast.max_toasts must not be negative", ErrInvalidSettings)
	}
	switch s.Theme.Force {
	case "", "dark", "light":
	default:
		return fmt.Errorf("%w: theme.force must be dark or light, got %q", ErrInvalidSettings, s.Theme.Force)
	}
	return nil
}
