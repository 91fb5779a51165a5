package logger

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.trai.ch/targets/internal/core/ports"
)

// NodeID is the graft node providing ports.Logger.
const NodeID graft.ID = "adapter.logger"

// FormatEnvVar selects the log format. "json" switches to slog's JSON handler.
const FormatEnvVar = "TARGETS_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return FromEnv(os.Getenv(FormatEnvVar)), nil
		},
	})
}

// FromEnv creates a stderr logger for the given format value.
func FromEnv(format string) *Logger {
	l := newLogger()
	l.SetJSON(strings.EqualFold(strings.TrimSpace(format), "json"))
	return l
}
