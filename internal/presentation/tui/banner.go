package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/var1d/folio/pkg/theme"
)

var bannerLines = []string{
	"   __       _ _       ",
	"  / _| ___ | (_) ___  ",
	" | |_ / _ \\| | |/ _ \\ ",
	" |  _| (_) | | | (_) |",
	" |_|  \\___/|_|_|\\___/ ",
}

// bannerVars colour the banner lines top to bottom.
var bannerVars = []string{"--neon", "--accent2", "--accent", "--green", "--muted"}

// PrintBanner writes the folio banner to w, coloured with the palette of the
// current display mode.
func PrintBanner(w io.Writer, p theme.Palette) {
	profile := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		s := termenv.String(line)
		if hex, ok := p.Lookup(bannerVars[i%len(bannerVars)]); ok {
			s = s.Foreground(profile.Color(hex))
		}
		fmt.Fprintln(w, s)
	}
	fmt.Fprintln(w)
}
