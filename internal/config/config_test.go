package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, WindowWidth, cfg.Window.Width)
	assert.Equal(t, WindowHeight, cfg.Window.Height)
	assert.Equal(t, 90, cfg.Scene.Points)
	assert.Equal(t, [3]string{"#F00", "#0F0", "#00F"}, cfg.Scene.ColorTriple())
	assert.Equal(t, "screen", cfg.Scene.BlendMode)
	assert.Equal(t, "#000", cfg.Scene.Background)
	assert.Equal(t, 2*time.Second, cfg.Scene.IdleTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Scene.ResizeDebounce)
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, "info", cfg.Logger.Level)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("scene.points", 12)
	v.Set("scene.blend_mode", "multiply")
	v.Set("scene.idle_timeout", "500ms")
	v.Set("render.pointer", "10, 20")

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Scene.Points)
	assert.Equal(t, "multiply", cfg.Scene.BlendMode)
	assert.Equal(t, 500*time.Millisecond, cfg.Scene.IdleTimeout)
	assert.Equal(t, time.Second/30, cfg.Render.FrameInterval())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"too few points", func(c *Config) { c.Scene.Points = 2 }, "scene.points must be in [3,180], got 2"},
		{"too many points", func(c *Config) { c.Scene.Points = 181 }, "got 181"},
		{"two colors", func(c *Config) { c.Scene.Colors = []string{"#fff", "#000"} }, "exactly 3 colors"},
		{"bad color", func(c *Config) { c.Scene.Colors[1] = "teal-ish" }, `"teal-ish" is not a color`},
		{"bad background", func(c *Config) { c.Scene.Background = "#12" }, "scene.background"},
		{"bad blend", func(c *Config) { c.Scene.BlendMode = "plus-lighter" }, "unknown mode"},
		{"zero idle", func(c *Config) { c.Scene.IdleTimeout = 0 }, "idle_timeout"},
		{"zero window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }, "window.tps"},
		{"zero frames", func(c *Config) { c.Render.Frames = 0 }, "render.frames"},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"gif", func(c *Config) { c.Render.Format = "gif" }, "svg or png"},
		{"bad pointer", func(c *Config) { c.Render.Pointer = "left" }, "must be x,y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewConfigFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("scene.points", 0)

	_, err := NewConfigFromViper(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParsePoint(t *testing.T) {
	x, y, ok, err := ParsePoint(" 1.5 , -2 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, x)
	assert.Equal(t, -2.0, y)

	_, _, ok, err = ParsePoint("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, _, err = ParsePoint("1,b")
	assert.ErrorIs(t, err, ErrInvalid)
}
