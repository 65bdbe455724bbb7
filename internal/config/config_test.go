package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.Store != "file" || cfg.HitRadius != geom.HitRadius {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.BlinkPeriod() != 500*time.Millisecond {
		t.Errorf("BlinkPeriod() = %v", cfg.BlinkPeriod())
	}
	if got := cfg.Origins(); len(got) != 2 || got[0] != "localhost:5173" {
		t.Errorf("Origins() = %v", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VECDRAW_PORT", "9000")
	t.Setenv("VECDRAW_LOG_LEVEL", "debug")
	t.Setenv("VECDRAW_DEFAULT_COLOR", "danger")
	t.Setenv("VECDRAW_DEFAULT_POLY_POINTS", "6")
	t.Setenv("VECDRAW_ALLOWED_ORIGINS", " a.example , ,b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v", cfg.Level())
	}
	style := cfg.Style()
	if style.Color != geom.Danger || style.VertexCount != 6 || style.Width != widget.DefaultWidth {
		t.Errorf("Style() = %+v", style)
	}
	if got := cfg.Origins(); len(got) != 2 || got[1] != "b.example" {
		t.Errorf("Origins() = %v", got)
	}
}

func TestStyleFallbacks(t *testing.T) {
	cfg := &Config{DefaultColor: "mauve", DefaultWidth: -1, LogLevel: "loud"}
	style := cfg.Style()
	if style.Color != geom.White || style.Width != widget.DefaultWidth || style.VertexCount != widget.DefaultVertexCount {
		t.Errorf("Style() = %+v", style)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VECDRAW_PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a non-numeric port")
	}
}
