package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
)

var backgroundColor = color.RGBA{20, 20, 20, 255}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func drawCommands(dst *ebiten.Image, commands []engine.DrawCommand) {
	for _, cmd := range commands {
		m := engine.MatrixFromSlice(cmd.Transform)
		switch cmd.Op {
		case engine.OpPath:
			drawPath(dst, cmd, m)
		case engine.OpText:
			if cmd.Position != nil {
				p := m.Apply(*cmd.Position)
				ebitenutil.DebugPrintAt(dst, cmd.Text, int(p.X), int(p.Y))
			}
		}
	}
}

// buildPath converts a command path to an ebiten path, applying m to every
// point.
func buildPath(path geom.Path, m engine.Matrix2D) *vector.Path {
	var p vector.Path
	pt := func(c geom.PathCommand, i int) (float32, float32) {
		w := m.Apply(geom.Pt(c.Float(i), c.Float(i+1)))
		return float32(w.X), float32(w.Y)
	}
	for _, c := range path {
		switch c.Op() {
		case "M":
			p.MoveTo(pt(c, 1))
		case "L":
			p.LineTo(pt(c, 1))
		case "Q":
			cx, cy := pt(c, 1)
			x, y := pt(c, 3)
			p.QuadTo(cx, cy, x, y)
		case "C":
			c1x, c1y := pt(c, 1)
			c2x, c2y := pt(c, 3)
			x, y := pt(c, 5)
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case "Z":
			p.Close()
		}
	}
	return &p
}

func drawPath(dst *ebiten.Image, cmd engine.DrawCommand, m engine.Matrix2D) {
	path := buildPath(cmd.Path, m)

	var vs []ebiten.Vertex
	var is []uint16
	opts := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if cmd.Filled {
		// only convex marker dots are filled; the default fill rule covers them
		vs, is = path.AppendVerticesAndIndicesForFilling(nil, nil)
	} else {
		width := cmd.StrokeWidth
		if width <= 0 {
			width = 1
		}
		vs, is = path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
			Width:    float32(width),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
	}
	setVertexColors(vs, cmd.Color)
	dst.DrawTriangles(vs, is, whiteSubImage, opts)
}

func setVertexColors(vertices []ebiten.Vertex, c geom.Color) {
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(c.R)
		vertices[i].ColorG = float32(c.G)
		vertices[i].ColorB = float32(c.B)
		vertices[i].ColorA = float32(c.A)
	}
}

func drawStatus(dst *ebiten.Image, text string, w, h int) {
	vector.DrawFilledRect(dst, 0, float32(h-statusHeight), float32(w), statusHeight, color.RGBA{40, 40, 40, 255}, false)
	ebitenutil.DebugPrintAt(dst, text, 6, h-statusHeight+4)
}
