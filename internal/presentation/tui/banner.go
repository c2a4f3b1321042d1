package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Augmenter ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"     _                                    _            ", "#818cf8"},
		{"    / \\  _   _  __ _ _ __ ___   ___ _ __ | |_ ___ _ __ ", "#a78bfa"},
		{"   / _ \\| | | |/ _` | '_ ` _ \\ / _ \\ '_ \\| __/ _ \\ '__|", "#c084fc"},
		{"  / ___ \\ |_| | (_| | | | | | |  __/ | | | ||  __/ |   ", "#e879f9"},
		{" /_/   \\_\\__,_|\\__, |_| |_| |_|\\___|_| |_|\\__\\___|_|   ", "#f472b6"},
		{"               |___/                                   ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
