//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/editor"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

var session *engine.Session

var keyNames = map[string]editor.EventType{
	"Escape":    editor.EventEscape,
	"Enter":     editor.EventEnter,
	"Backspace": editor.EventBackspace,
	"Delete":    editor.EventDelete,
}

func main() {
	session = engine.NewSession(engine.Options{})

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("pointerDown", js.FuncOf(pointer(editor.EventPress)))
	api.Set("pointerUp", js.FuncOf(pointer(editor.EventRelease)))
	api.Set("pointerMove", js.FuncOf(pointer(editor.EventMove)))
	api.Set("key", js.FuncOf(key))
	api.Set("typeText", js.FuncOf(typeText))
	api.Set("tick", js.FuncOf(tick))
	api.Set("setMode", js.FuncOf(setMode))
	api.Set("setKind", js.FuncOf(setKind))
	api.Set("setStyle", js.FuncOf(setStyle))
	api.Set("selectAt", js.FuncOf(selectAt))
	api.Set("deselect", js.FuncOf(deselect))
	api.Set("clear", js.FuncOf(clearScene))
	api.Set("loadScene", js.FuncOf(loadScene))

	// --- Queries (frontend ← backend) ---
	api.Set("render", js.FuncOf(render))
	api.Set("exportScene", js.FuncOf(exportScene))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getState", js.FuncOf(getState))

	js.Global().Set("vecdraw", api)
	js.Global().Set("vecdrawWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func pointer(t editor.EventType) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) < 2 {
			return nil
		}
		p := geom.Point{X: args[0].Float(), Y: args[1].Float()}
		ev := editor.Event{Type: t, Pos: &p}
		if len(args) > 2 {
			ev.Button = editor.Button(args[2].Int())
		}
		session.Handle(ev)
		return nil
	}
}

func key(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if t, ok := keyNames[args[0].String()]; ok {
		session.Handle(editor.Key(t))
	}
	return nil
}

func typeText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	for _, r := range args[0].String() {
		session.Handle(editor.Rune(r))
	}
	return nil
}

func tick(this js.Value, args []js.Value) interface{} {
	session.Handle(editor.Key(editor.EventTick))
	return js.ValueOf(session.TimerEnabled())
}

func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := session.SetMode(widget.ParseDrawMode(args[0].String())); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func setKind(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	kind, err := widget.ParseKind(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	session.SetKind(kind)
	return okResult()
}

// setStyle(colorName, width, polyPoints)
func setStyle(this js.Value, args []js.Value) interface{} {
	style := session.Style()
	if len(args) > 0 {
		style.Color, _ = geom.ParseColor(args[0].String())
	}
	if len(args) > 1 {
		style.Width = args[1].Float()
	}
	if len(args) > 2 {
		style.VertexCount = args[2].Int()
	}
	session.SetStyle(style)
	return nil
}

func selectAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	id, _ := session.SelectAt(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	return js.ValueOf(id)
}

func deselect(this js.Value, args []js.Value) interface{} {
	session.Deselect()
	return nil
}

func clearScene(this js.Value, args []js.Value) interface{} {
	session.Clear()
	return nil
}

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene JSON"})
	}
	records, err := document.Unmarshal([]byte(args[0].String()))
	if err != nil {
		return errorResult(err)
	}
	if err := session.Load(records); err != nil {
		return errorResult(err)
	}
	return okResult()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.RenderJSON())
}

func exportScene(this js.Value, args []js.Value) interface{} {
	data, err := document.Marshal(session.Export())
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.GetSelectionBounds())
}

func getState(this js.Value, args []js.Value) interface{} {
	target := ""
	if t := session.Target(); t != nil {
		target = widget.IDOf(t)
	}
	return js.ValueOf(map[string]interface{}{
		"mode":    session.Mode().String(),
		"kind":    session.Kind().String(),
		"target":  target,
		"timer":   session.TimerEnabled(),
		"widgets": len(session.Widgets()),
	})
}
