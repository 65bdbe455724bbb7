// Command vecdraw works with saved scene files from the shell.
//
//	vecdraw render [-from x,y -to x,y | -fit] scene.json out.png
//	vecdraw check scene.json
//	vecdraw session
//	vecdraw token [-ttl 24h] subject [session]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/inamate/vecdraw/internal/auth"
	"github.com/inamate/vecdraw/internal/config"
	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/raster"
	"github.com/inamate/vecdraw/internal/typeid"
	"github.com/inamate/vecdraw/internal/widget"
)

const usage = `usage:
  vecdraw render [flags] <scene.json> <out.png|.tiff|.bmp>
  vecdraw check <scene.json>
  vecdraw session
  vecdraw token [-ttl 24h] <subject> [session]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:], os.Stdout)
	case "check":
		err = runCheck(os.Args[2:], os.Stdout)
	case "session":
		fmt.Println(typeid.NewSessionID())
	case "token":
		err = runToken(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vecdraw %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runRender(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	width := fs.Int("width", cfg.CanvasWidth, "image width when no crop is given")
	height := fs.Int("height", cfg.CanvasHeight, "image height when no crop is given")
	from := fs.String("from", "", "crop corner x,y")
	to := fs.String("to", "", "opposite crop corner x,y")
	fit := fs.Bool("fit", false, "crop to the scene bounds")
	margin := fs.Float64("margin", 8, "padding around -fit bounds")
	font := fs.String("font", cfg.FontPath, "TrueType font for text shapes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("need a scene file and an output file")
	}
	src, dst := fs.Arg(0), fs.Arg(1)

	format, err := raster.FormatFromPath(dst)
	if err != nil {
		return err
	}
	records, err := document.LoadFile(src)
	if err != nil {
		return err
	}
	sc, err := document.ImportScene(records)
	if err != nil {
		return err
	}
	widgets := sc.Widgets()

	opts := raster.Options{Width: *width, Height: *height, FontPath: *font}
	var crop geom.Rect
	switch {
	case *from != "" || *to != "":
		a, err := parsePoint(*from)
		if err != nil {
			return fmt.Errorf("-from: %w", err)
		}
		b, err := parsePoint(*to)
		if err != nil {
			return fmt.Errorf("-to: %w", err)
		}
		crop = geom.RectFromCorners(a, b)
	case *fit:
		crop = engine.GetSelectionBounds(widgets).Inset(-*margin)
	}
	if crop != (geom.Rect{}) {
		if crop.IsEmpty() {
			return errors.New("crop area is empty")
		}
		opts.Origin = crop.TopLeft()
		opts.Width = int(math.Ceil(crop.Width))
		opts.Height = int(math.Ceil(crop.Height))
	}

	r, err := raster.New(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := r.Encode(f, engine.CompileDrawCommands(widgets), format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	w, h := r.Size()
	fmt.Fprintf(out, "wrote %s (%dx%d, %d shapes)\n", dst, w, h, len(widgets))
	return nil
}

func runCheck(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("need a scene file")
	}
	records, err := document.LoadFile(args[0])
	if err != nil {
		return err
	}
	sc, err := document.ImportScene(records)
	if err != nil {
		return err
	}

	counts := make(map[widget.Kind]int)
	for _, w := range sc.Widgets() {
		counts[w.Kind()]++
	}
	for _, k := range widget.Kinds {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(out, "%-14s %d\n", k, n)
		}
	}
	b := engine.GetSelectionBounds(sc.Widgets())
	fmt.Fprintf(out, "%d records, %d shapes, bounds %.0f,%.0f %.0fx%.0f\n",
		len(records), sc.Len(), b.X, b.Y, b.Width, b.Height)
	return nil
}

func runToken(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := fs.Duration("ttl", auth.DefaultTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return errors.New("need a subject and an optional session id")
	}
	session := auth.AnySession
	if fs.NArg() == 2 {
		session = fs.Arg(1)
		if err := typeid.Validate(session, typeid.PrefixSession); err != nil {
			return err
		}
	}

	svc := auth.NewService(cfg.JWTSecret)
	token, err := svc.IssueToken(fs.Arg(0), session, *ttl)
	if err != nil {
		if errors.Is(err, auth.ErrDisabled) {
			return errors.New("VECDRAW_JWT_SECRET is not set")
		}
		return err
	}
	fmt.Fprintln(out, token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
	return nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("%q is not x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}
