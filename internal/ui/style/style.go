// Package style holds the palette and glyphs used for terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Roles of the palette colours.
var (
	Accent  = lipgloss.Color("#8B5CF6")
	Muted   = lipgloss.Color("#667085")
	Success = lipgloss.Color("#22A06B")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Hex returns the hex string of a palette colour.
func Hex(c lipgloss.Color) string {
	return string(c)
}

// Level returns the glyph and colour for a log level name: "error", "warn" or
// anything else for informational output.
func Level(name string) (glyph string, color lipgloss.Color) {
	switch name {
	case "error":
		return Cross, Failure
	case "warn":
		return Warning, Caution
	default:
		return "", Muted
	}
}
