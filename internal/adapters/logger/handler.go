package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/targets/internal/ui/output"
	"go.trai.ch/targets/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one coloured line per record.
// Attributes follow the message as space separated key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer means stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	if w == nil {
		w = os.Stderr
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := style.Level(levelName(r.Level))

	var b strings.Builder
	if glyph != "" {
		b.WriteString(glyph)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		for _, part := range flattenAttr(h.group, attr) {
			b.WriteByte(' ')
			b.WriteString(part)
		}
		return true
	})

	_, err := h.out.WriteString(output.Paint(h.out, b.String(), style.Hex(color)) + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, attr := range attrs {
		c.attrs = append(c.attrs, flattenAttr(h.group, attr)...)
	}
	return c
}

// WithGroup returns a new Handler that prefixes attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.group = joinKey(h.group, name)
	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append([]string(nil), h.attrs...),
		group: h.group,
	}
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	default:
		return "info"
	}
}

// flattenAttr renders attr as key=value pairs, expanding group values into
// dotted keys. Empty attributes are dropped.
func flattenAttr(prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return nil
	}

	if attr.Value.Kind() != slog.KindGroup {
		return []string{joinKey(prefix, attr.Key) + "=" + attr.Value.String()}
	}

	// Inline groups with an empty key keep the current prefix.
	groupPrefix := prefix
	if attr.Key != "" {
		groupPrefix = joinKey(prefix, attr.Key)
	}

	var parts []string
	for _, member := range attr.Value.Group() {
		parts = append(parts, flattenAttr(groupPrefix, member)...)
	}
	return parts
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
