package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iburimskiy/wobble-rings/internal/palette"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// MinPoints and MaxPoints bound the vertex count per ring.
	MinPoints = 3
	MaxPoints = 180

	// FrameStatsSize is how many frame durations the HUD averages over.
	FrameStatsSize = 120
)

type Config struct {
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	Scene  SceneConfig  `mapstructure:"scene" yaml:"scene"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// WindowConfig sizes the live window.
type WindowConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Title  string `mapstructure:"title" yaml:"title"`
	TPS    int    `mapstructure:"tps" yaml:"tps"`
}

// SceneConfig holds the initial values of the scene accessors.
type SceneConfig struct {
	Points         int           `mapstructure:"points" yaml:"points"`
	Colors         []string      `mapstructure:"colors" yaml:"colors"`
	BlendMode      string        `mapstructure:"blend_mode" yaml:"blend_mode"`
	Background     string        `mapstructure:"background" yaml:"background"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ResizeDebounce time.Duration `mapstructure:"resize_debounce" yaml:"resize_debounce"`
}

// ColorTriple returns the three ring fills.
func (s SceneConfig) ColorTriple() [3]string {
	var out [3]string
	copy(out[:], s.Colors)
	return out
}

// RenderConfig drives the headless renderer.
type RenderConfig struct {
	Frames int    `mapstructure:"frames" yaml:"frames"`
	FPS    int    `mapstructure:"fps" yaml:"fps"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Out    string `mapstructure:"out" yaml:"out"`
	Format string `mapstructure:"format" yaml:"format"`
	// Pointer is an optional "x,y" position held for the whole render.
	Pointer string `mapstructure:"pointer" yaml:"pointer"`
}

// FrameInterval is the simulated time between rendered frames.
func (r RenderConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", WindowWidth)
	v.SetDefault("window.height", WindowHeight)
	v.SetDefault("window.title", "Wobble Rings")
	v.SetDefault("window.tps", 60)

	v.SetDefault("scene.points", 90)
	v.SetDefault("scene.colors", append([]string(nil), palette.DefaultColors[:]...))
	v.SetDefault("scene.blend_mode", palette.DefaultBlendMode)
	v.SetDefault("scene.background", palette.DefaultBackground)
	v.SetDefault("scene.idle_timeout", "2s")
	v.SetDefault("scene.resize_debounce", "10ms")

	v.SetDefault("render.frames", 60)
	v.SetDefault("render.fps", 30)
	v.SetDefault("render.width", 800)
	v.SetDefault("render.height", 600)
	v.SetDefault("render.out", "frames")
	v.SetDefault("render.format", "svg")
	v.SetDefault("render.pointer", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "wobble-rings")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
}

// NewDefaultConfig returns the configuration with nothing but defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return invalid("window.tps must be positive, got %d", c.Window.TPS)
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	return c.Render.Validate()
}

func (s *SceneConfig) Validate() error {
	if s.Points < MinPoints || s.Points > MaxPoints {
		return invalid("scene.points must be in [%d,%d], got %d", MinPoints, MaxPoints, s.Points)
	}
	if len(s.Colors) != 3 {
		return invalid("scene.colors needs exactly 3 colors, got %d", len(s.Colors))
	}
	for _, c := range s.Colors {
		if !palette.IsColor(c) {
			return invalid("scene.colors: %q is not a color", c)
		}
	}
	if !palette.IsColor(s.Background) {
		return invalid("scene.background: %q is not a color", s.Background)
	}
	if !palette.IsBlendMode(s.BlendMode) {
		return invalid("scene.blend_mode: unknown mode %q", s.BlendMode)
	}
	if s.IdleTimeout <= 0 {
		return invalid("scene.idle_timeout must be positive")
	}
	if s.ResizeDebounce < 0 {
		return invalid("scene.resize_debounce must not be negative")
	}
	return nil
}

func (r *RenderConfig) Validate() error {
	if r.Frames <= 0 {
		return invalid("render.frames must be positive, got %d", r.Frames)
	}
	if r.FPS <= 0 {
		return invalid("render.fps must be positive, got %d", r.FPS)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return invalid("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	switch strings.ToLower(r.Format) {
	case "svg", "png":
	default:
		return invalid("render.format must be svg or png, got %q", r.Format)
	}
	if _, _, _, err := ParsePoint(r.Pointer); err != nil {
		return err
	}
	return nil
}

// ParsePoint reads an "x,y" pair. An empty string reports ok=false.
func ParsePoint(s string) (x, y float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false, nil
	}
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false, invalid("point %q must be x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, false, invalid("point %q: %v", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, false, invalid("point %q: %v", s, err)
	}
	return x, y, true, nil
}
