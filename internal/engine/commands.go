package engine

import (
	"encoding/json"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

// Draw operations.
const (
	OpPath = "path"
	OpText = "text"
)

// markerRadius is the radius of the dots drawn on the edit target's
// control points.
const markerRadius = 2.0

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string      `json:"op"`                    // Operation: "path" or "text"
	ObjectID    string      `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64   `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        geom.Path   `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string      `json:"fill,omitempty"`        // Fill color
	Stroke      string      `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64     `json:"strokeWidth,omitempty"` // Stroke width
	Color       geom.Color  `json:"color"`                 // Stroke or text color, unformatted
	Filled      bool        `json:"filled,omitempty"`      // Fill the path with Color
	Text        string      `json:"text,omitempty"`        // Content for "text" ops
	Position    *geom.Point `json:"position,omitempty"`    // Text anchor
	Font        string      `json:"font,omitempty"`
	FontSize    float64     `json:"fontSize,omitempty"`
	Align       string      `json:"align,omitempty"`
	Baseline    string      `json:"baseline,omitempty"`
	Preview     bool        `json:"preview,omitempty"` // Not yet part of the scene
}

// CompileDrawCommands generates a draw command buffer for widgets.
// Commands are in painter's order (back to front).
func CompileDrawCommands(widgets []widget.Widget) []DrawCommand {
	commands := make([]DrawCommand, 0, len(widgets))
	for _, w := range widgets {
		commands = append(commands, compileWidget(w))
	}
	return commands
}

// compileWidget generates the draw command for one widget.
func compileWidget(w widget.Widget) DrawCommand {
	info := w.Info()
	transform := RotateAbout(w.Rotation(), w.Pivot())

	cmd := DrawCommand{
		Op:        OpPath,
		ObjectID:  info.ID,
		Transform: transform.ToSlice(),
		Color:     info.Color,
		Preview:   info.Status == widget.StatusInProgress,
	}

	if t, ok := w.(widget.Text); ok {
		pos := t.Position
		cmd.Op = OpText
		cmd.Text = t.Display()
		cmd.Position = &pos
		cmd.Font = t.Font
		cmd.FontSize = t.Size
		cmd.Fill = info.Color.CSS()
		cmd.Align = canvasAlign(t.HAlign)
		cmd.Baseline = canvasBaseline(t.VAlign)
		return cmd
	}

	cmd.Path = w.Path()
	cmd.Stroke = info.Color.CSS()
	cmd.StrokeWidth = info.Width
	return cmd
}

// compileMarkers draws the control points of the edit target.
func compileMarkers(w widget.Widget) []DrawCommand {
	points := w.ControlPoints()
	commands := make([]DrawCommand, 0, len(points))
	for _, p := range points {
		commands = append(commands, DrawCommand{
			Op:          OpPath,
			Transform:   Identity().ToSlice(),
			Path:        geom.Circle(p, markerRadius),
			Fill:        geom.Primary.CSS(),
			Stroke:      geom.White.CSS(),
			StrokeWidth: 1,
			Color:       geom.Primary,
			Filled:      true,
		})
	}
	return commands
}

// compileGuide draws the box spanned by the first click and the cursor.
func compileGuide(from, to geom.Point) DrawCommand {
	return DrawCommand{
		Op:          OpPath,
		Transform:   Identity().ToSlice(),
		Path:        geom.RectFromCorners(from, to).Path(),
		Stroke:      geom.Secondary.CSS(),
		StrokeWidth: 1,
		Color:       geom.Secondary,
		Preview:     true,
	}
}

func canvasAlign(h string) string {
	switch h {
	case widget.AlignCenter:
		return "center"
	case widget.AlignRight:
		return "right"
	default:
		return "left"
	}
}

func canvasBaseline(v string) string {
	switch v {
	case widget.AlignCenter:
		return "middle"
	case widget.AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the id of the topmost widget under p, or empty string.
func HitTest(widgets []widget.Widget, p geom.Point, tolerance float64) string {
	// Traverse in reverse order (front to back) to get topmost hit
	for i := len(widgets) - 1; i >= 0; i-- {
		if hitWidget(widgets[i], p, tolerance) {
			return widget.IDOf(widgets[i])
		}
	}
	return ""
}

// GetSelectionBounds returns the combined bounding box of the given widgets.
func GetSelectionBounds(widgets []widget.Widget) geom.Rect {
	var result geom.Rect
	for _, w := range widgets {
		result = result.Union(Bounds(w))
	}
	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
