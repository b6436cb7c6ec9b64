package cmd

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iburimskiy/wobble-rings/internal/config"
	"github.com/iburimskiy/wobble-rings/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "wobble-rings version dev\n", out)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestRenderSVG(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--frames", "3", "--out", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "frame 3/3")

	for _, name := range []string{"frame_000.svg", "frame_001.svg", "frame_002.svg"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), `<svg height="100%"`)
		assert.Contains(t, string(data), "translate(400, 300)")
	}
	assert.NoFileExists(t, filepath.Join(dir, "frame_003.svg"))
}

func TestRenderPNG(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "render", "--frames", "1", "--format", "png",
		"--width", "200", "--height", "150", "--out", dir, "--log-level", "error")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "frame_000.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRenderIsReproducible(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	args := []string{"render", "--frames", "4", "--pointer", "600,300", "--log-level", "error", "--out"}

	_, err := execute(t, append(args, a)...)
	require.NoError(t, err)
	_, err = execute(t, append(args, b)...)
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(a, "frame_003.svg"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(b, "frame_003.svg"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "render", "--points", "500", "--out", t.TempDir())
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "render", "--format", "gif", "--out", t.TempDir())
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "render", "--pointer", "middle", "--out", t.TempDir())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRenderReadsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WOBBLE_RENDER_FRAMES", "2")
	t.Setenv("WOBBLE_SCENE_BLEND_MODE", "difference")

	_, err := execute(t, "render", "--out", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "frame_001.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "frame_002.svg"))

	data, err := os.ReadFile(filepath.Join(dir, "frame_000.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mix-blend-mode: difference")
}

func TestRenderReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rings.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
scene:
  blend_mode: multiply
  colors: ["#123", "#456", "#789"]
render:
  frames: 1
logger:
  level: error
`), 0o644))

	out := filepath.Join(dir, "frames")
	_, err := execute(t, "render", "--config", cfgPath, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "frame_000.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mix-blend-mode: multiply")
	assert.Contains(t, string(data), `fill="#456"`)
}

func TestMissingConfigFileIsAnError(t *testing.T) {
	_, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
