// Package output creates termenv outputs with the colour handling shared by the
// logger and the descriptor renderer.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ProfileFor returns the colour profile for w. Files that are not terminals
// get Ascii so piped output stays free of escape sequences.
func ProfileFor(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return ColorProfile()
}

// New creates a termenv.Output for w. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ProfileFor(w)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Paint renders s in the given hex colour using out's profile.
func Paint(out *termenv.Output, s, hex string) string {
	return out.String(s).Foreground(out.Color(hex)).String()
}
