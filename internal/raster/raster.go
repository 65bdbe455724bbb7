// Package raster draws engine draw commands into an image with gg and
// encodes the result.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
}

// Options configures a Renderer.
type Options struct {
	Width      int
	Height     int
	Background geom.Color
	// FontPath is a TrueType/OpenType file for text commands. Without one
	// text commands are skipped.
	FontPath string
	// Origin is the scene point mapped to the image's top-left corner.
	Origin geom.Point
	Logger *slog.Logger
}

// Renderer rasterizes draw commands at a fixed size.
type Renderer struct {
	opts   Options
	source *text.FontSource
	faces  map[float64]text.Face
	log    *slog.Logger
}

// New creates a renderer. It fails only when a configured font cannot be
// loaded.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{opts: opts, faces: make(map[float64]text.Face), log: logger}
	if opts.FontPath != "" {
		source, err := text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", opts.FontPath, err)
		}
		r.source = source
	}
	return r, nil
}

// Close releases the loaded font.
func (r *Renderer) Close() error {
	if r.source == nil {
		return nil
	}
	return r.source.Close()
}

// Size returns the image dimensions.
func (r *Renderer) Size() (int, int) { return r.opts.Width, r.opts.Height }

// Render draws commands in order and returns the image.
func (r *Renderer) Render(commands []engine.DrawCommand) image.Image {
	dc := r.draw(commands)
	defer dc.Close()
	return dc.Image()
}

// Encode renders commands and writes them to w in format.
func (r *Renderer) Encode(w io.Writer, commands []engine.DrawCommand, format Format) error {
	dc := r.draw(commands)
	defer dc.Close()

	switch format {
	case PNG:
		return dc.EncodePNG(w)
	case TIFF:
		return tiff.Encode(w, dc.Image(), &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, dc.Image())
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

func (r *Renderer) draw(commands []engine.DrawCommand) *gg.Context {
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	bg := r.opts.Background
	dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})

	origin := engine.Translate(-r.opts.Origin.X, -r.opts.Origin.Y)
	for _, cmd := range commands {
		m := origin.Multiply(engine.MatrixFromSlice(cmd.Transform))

		switch cmd.Op {
		case engine.OpPath:
			r.drawPath(dc, cmd, m)
		case engine.OpText:
			r.drawText(dc, cmd, m)
		}
	}
	return dc
}

func (r *Renderer) drawPath(dc *gg.Context, cmd engine.DrawCommand, m engine.Matrix2D) {
	dc.Push()
	defer dc.Pop()

	dc.SetTransform(gg.Matrix{A: m[0], B: m[2], C: m[4], D: m[1], E: m[3], F: m[5]})
	dc.ClearPath()
	for _, c := range cmd.Path {
		switch c.Op() {
		case "M":
			dc.MoveTo(c.Float(1), c.Float(2))
		case "L":
			dc.LineTo(c.Float(1), c.Float(2))
		case "Q":
			dc.QuadraticTo(c.Float(1), c.Float(2), c.Float(3), c.Float(4))
		case "C":
			dc.CubicTo(c.Float(1), c.Float(2), c.Float(3), c.Float(4), c.Float(5), c.Float(6))
		case "Z":
			dc.ClosePath()
		}
	}

	col := cmd.Color
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	if cmd.Filled {
		if err := dc.Fill(); err != nil {
			r.log.Warn("fill path", "id", cmd.ObjectID, "error", err)
		}
		return
	}
	width := cmd.StrokeWidth
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width)
	if err := dc.Stroke(); err != nil {
		r.log.Warn("stroke path", "id", cmd.ObjectID, "error", err)
	}
}

// drawText places the string at its transformed anchor. Glyphs are not
// rotated.
func (r *Renderer) drawText(dc *gg.Context, cmd engine.DrawCommand, m engine.Matrix2D) {
	if r.source == nil || cmd.Position == nil || cmd.Text == "" {
		return
	}
	face, ok := r.faces[cmd.FontSize]
	if !ok {
		face = r.source.Face(cmd.FontSize)
		r.faces[cmd.FontSize] = face
	}

	p := m.Apply(*cmd.Position)
	col := cmd.Color
	dc.SetFont(face)
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.DrawStringAnchored(cmd.Text, p.X, p.Y, anchorX(cmd.Align), anchorY(cmd.Baseline))
}

func anchorX(align string) float64 {
	switch align {
	case "center":
		return 0.5
	case "right":
		return 1
	}
	return 0
}

func anchorY(baseline string) float64 {
	switch baseline {
	case "middle":
		return 0.5
	case "bottom":
		return 0
	}
	return 1
}
