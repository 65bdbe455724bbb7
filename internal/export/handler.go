// Package export renders stored scenes to raster images over HTTP.
package export

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/raster"
	"github.com/inamate/vecdraw/internal/store"
)

const maxDimension = 8192

var contentTypes = map[raster.Format]string{
	raster.PNG:  "image/png",
	raster.TIFF: "image/tiff",
	raster.BMP:  "image/bmp",
}

// SceneLoader is the read side of a scene store.
type SceneLoader interface {
	Load(ctx context.Context, name string) ([]document.ExportRecord, error)
}

type Handler struct {
	scenes SceneLoader
	opts   raster.Options
}

// NewHandler renders with opts unless the request overrides the size.
func NewHandler(scenes SceneLoader, opts raster.Options) *Handler {
	return &Handler{scenes: scenes, opts: opts}
}

// Image serves /api/scenes/{name}/{format}. Optional query parameters:
// width, height, x and y (the scene point at the top-left corner).
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	format := raster.Format(vars["format"])
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, "invalid format: must be png, tiff, or bmp", http.StatusBadRequest)
		return
	}

	opts := h.opts
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("width")); err == nil && v > 0 && v <= maxDimension {
		opts.Width = v
	}
	if v, err := strconv.Atoi(q.Get("height")); err == nil && v > 0 && v <= maxDimension {
		opts.Height = v
	}
	if v, err := strconv.ParseFloat(q.Get("x"), 64); err == nil {
		opts.Origin.X = v
	}
	if v, err := strconv.ParseFloat(q.Get("y"), 64); err == nil {
		opts.Origin.Y = v
	}

	records, err := h.scenes.Load(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, "scene not found", http.StatusNotFound)
		case errors.Is(err, store.ErrInvalidName):
			http.Error(w, "invalid scene name", http.StatusBadRequest)
		default:
			slog.Error("load scene", "name", name, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	sc, err := document.ImportScene(records)
	if err != nil {
		slog.Warn("stored scene does not import", "name", name, "error", err)
		http.Error(w, "scene is malformed", http.StatusUnprocessableEntity)
		return
	}

	renderer, err := raster.New(opts)
	if err != nil {
		slog.Error("create renderer", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer renderer.Close()

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, engine.CompileDrawCommands(sc.Widgets()), format); err != nil {
		slog.Error("encode image", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", "inline; filename=\""+name+"."+string(format)+"\"")
	buf.WriteTo(w)
}
