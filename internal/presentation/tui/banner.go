package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the exprgen banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text, color string
	}{
		{"  _____                                      ", "#818cf8"},
		{" | ____|_  ___ __  _ __ __ _  ___ _ __       ", "#a78bfa"},
		{" |  _| \\ \\/ / '_ \\| '__/ _` |/ _ \\ '_ \\  ", "#c084fc"},
		{" | |___ >  <| |_) | | | (_| |  __/ | | |     ", "#e879f9"},
		{" |_____/_/\\_\\ .__/|_|  \\__, |\\___|_| |_| ", "#f472b6"},
		{"            |_|        |___/                 ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status renders a short colored status word, e.g. "ok" or "failed".
func Status(ok bool, text string) string {
	p := termenv.ColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
