package main

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"

	"github.com/inamate/vecdraw/internal/document"
)

func (g *Game) save() {
	b := dialog.File().Filter("Scene", "json").Title("Save scene")
	if g.current != "" {
		b = b.SetStartDir(filepath.Dir(g.current))
	}
	path, err := b.Save()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			slog.Error("save dialog", "error", err)
		}
		return
	}
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		path += ".json"
	}

	if err := document.SaveFile(path, g.session.Export()); err != nil {
		slog.Error("save scene", "path", path, "error", err)
		g.status = "save failed"
		dialog.Message("Could not save %s: %v", filepath.Base(path), err).Title("Save failed").Error()
		return
	}
	g.current = path
	g.status = "saved " + filepath.Base(path)
	slog.Info("scene saved", "path", path, "widgets", len(g.session.Widgets()))
}

func (g *Game) open() {
	path, err := dialog.File().Filter("Scene", "json").Title("Open scene").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			slog.Error("open dialog", "error", err)
		}
		return
	}

	records, err := document.LoadFile(path)
	if err == nil {
		err = g.session.Load(records)
	}
	if err != nil {
		slog.Error("load scene", "path", path, "error", err)
		g.status = "open failed"
		dialog.Message("Could not open %s: %v", filepath.Base(path), err).Title("Open failed").Error()
		return
	}
	g.current = path
	g.status = "opened " + filepath.Base(path)
}
