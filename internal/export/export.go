// Package export writes scene frames to disk, as the SVG document itself or
// rasterized to PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/gogpu/gg"

	"github.com/iburimskiy/wobble-rings/internal/palette"
	"github.com/iburimskiy/wobble-rings/internal/scene"
)

// ErrUnknownFormat is returned for formats other than svg and png.
var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" or "png" in any case, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// WriteSVG serializes an indented copy of doc. The live document is left
// untouched.
func WriteSVG(w io.Writer, doc *etree.Document) error {
	out := doc.Copy()
	out.Indent(2)
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// blendModes maps the CSS blend modes gg can composite. Everything else is
// drawn with normal source-over.
var blendModes = map[string]gg.BlendMode{
	"normal":   gg.BlendNormal,
	"multiply": gg.BlendMultiply,
	"screen":   gg.BlendScreen,
	"overlay":  gg.BlendOverlay,
}

func layerBlend(mode string) gg.BlendMode {
	if m, ok := blendModes[mode]; ok {
		return m
	}
	return gg.BlendNormal
}

func draw(f scene.Frame) (*gg.Context, error) {
	w, h := int(f.Width), int(f.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: invalid size %vx%v", f.Width, f.Height)
	}
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.FromColor(palette.Parse(f.Background)))

	blend := layerBlend(f.BlendMode)
	for i, r := range f.Rings {
		if len(r.Points) == 0 {
			continue
		}
		dc.PushLayer(blend, 1)
		dc.SetColor(palette.Parse(r.Fill))
		for j, p := range r.Points {
			x, y := f.Center.X+p.X, f.Center.Y+p.Y
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		err := dc.Fill()
		dc.PopLayer()
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("rasterize ring %d: %w", i, err)
		}
	}
	return dc, nil
}

// Rasterize draws f onto a new image the size of its viewport.
func Rasterize(f scene.Frame) (image.Image, error) {
	dc, err := draw(f)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG rasterizes f and encodes it as PNG.
func WritePNG(w io.Writer, f scene.Frame) error {
	dc, err := draw(f)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Write exports the current state of s in the given format.
func Write(w io.Writer, format Format, s *scene.Scene) error {
	switch format {
	case SVG:
		return WriteSVG(w, s.Document())
	case PNG:
		return WritePNG(w, s.Snapshot())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveFile writes s to path, picking the format from the extension.
func SaveFile(path string, s *scene.Scene) (err error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return Write(file, format, s)
}
