// Command draftpad is a desktop window for drawing and editing vector
// shapes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/inamate/vecdraw/internal/config"
	"github.com/inamate/vecdraw/internal/editor"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

const statusHeight = 24

var kindKeys = map[ebiten.Key]widget.Kind{
	ebiten.Key1: widget.KindArc,
	ebiten.Key2: widget.KindBezier,
	ebiten.Key3: widget.KindCircle,
	ebiten.Key4: widget.KindEllipse,
	ebiten.Key5: widget.KindLine,
	ebiten.Key6: widget.KindPolygon,
	ebiten.Key7: widget.KindPolyLine,
	ebiten.Key8: widget.KindRightTriangle,
	ebiten.Key9: widget.KindFreeHand,
	ebiten.Key0: widget.KindText,
}

var modeKeys = map[ebiten.Key]widget.DrawMode{
	ebiten.KeyA: widget.ModeDrawAll,
	ebiten.KeyN: widget.ModeNew,
	ebiten.KeyE: widget.ModeEdit,
	ebiten.KeyR: widget.ModeRotate,
}

type Game struct {
	session *engine.Session
	blink   time.Duration

	cursor    geom.Point
	hasCursor bool
	lastTick  time.Time
	colorIdx  int
	runes     []rune

	status  string
	current string // path of the open scene
}

func NewGame(cfg *config.Config) *Game {
	g := &Game{
		session: engine.NewSession(engine.Options{
			HitRadius: cfg.HitRadius,
			Style:     cfg.Style(),
		}),
		blink:    cfg.BlinkPeriod(),
		lastTick: time.Now(),
		status:   "1-0 kind  A/N/E/R mode  C color  [ ] width  - + points  Ctrl+S save  Ctrl+O open  Ctrl+K clear",
	}
	for i, name := range geom.PaletteNames {
		if c, _ := geom.ParseColor(name); c == cfg.Style().Color {
			g.colorIdx = i
		}
	}
	return g
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	g.handlePointer()

	if g.session.TimerEnabled() {
		g.handleTextKeys()
		if time.Since(g.lastTick) >= g.blink {
			g.session.Handle(editor.Key(editor.EventTick))
			g.lastTick = time.Now()
		}
		return nil
	}
	g.handleKeys()
	return nil
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	p := geom.Pt(float64(mx), float64(my))
	if !g.hasCursor || p != g.cursor {
		g.cursor, g.hasCursor = p, true
		g.session.Handle(editor.Move(p))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.session.Mode() == widget.ModeDrawAll {
			g.session.SelectAt(p)
			return
		}
		g.session.Handle(editor.Press(p))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.session.Handle(editor.Release(p))
	}
}

func (g *Game) handleTextKeys() {
	g.runes = ebiten.AppendInputChars(g.runes[:0])
	for _, r := range g.runes {
		g.session.Handle(editor.Rune(r))
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.session.Handle(editor.Key(editor.EventEnter))
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.session.Handle(editor.Key(editor.EventBackspace))
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.session.Handle(editor.Key(editor.EventEscape))
	}
}

func (g *Game) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.save()
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			g.open()
		case inpututil.IsKeyJustPressed(ebiten.KeyK):
			g.session.Clear()
			g.status = "cleared"
		}
		return
	}

	for key, kind := range kindKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.session.SetKind(kind)
			if g.session.Mode() != widget.ModeNew {
				g.setMode(widget.ModeNew)
			}
		}
	}
	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.setMode(mode)
		}
	}

	style := g.session.Style()
	changed := true
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.colorIdx = (g.colorIdx + 1) % len(geom.PaletteNames)
		style.Color, _ = geom.ParseColor(geom.PaletteNames[g.colorIdx])
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		style.Width = max(1, style.Width-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		style.Width++
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		style.VertexCount = max(3, style.VertexCount-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		style.VertexCount++
	default:
		changed = false
	}
	if changed {
		g.session.SetStyle(style)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.session.Handle(editor.Key(editor.EventEscape))
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.session.Handle(editor.Key(editor.EventDelete))
	}
}

func (g *Game) setMode(mode widget.DrawMode) {
	if err := g.session.SetMode(mode); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "mode " + mode.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawCommands(screen, g.session.Render())

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	style := g.session.Style()
	line := fmt.Sprintf("%s | %s %s | %s w=%.0f n=%d | %d shapes",
		g.status, g.session.Mode(), g.session.Kind(), geom.PaletteNames[g.colorIdx],
		style.Width, style.VertexCount, len(g.session.Widgets()))
	drawStatus(screen, line, w, h)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	game := NewGame(cfg)
	ebiten.SetWindowSize(cfg.CanvasWidth, cfg.CanvasHeight+statusHeight)
	ebiten.SetWindowTitle("draftpad")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
}
