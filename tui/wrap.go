package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Truncate shortens s to at most width display cells, appending an
// ellipsis when anything was cut. Grapheme clusters are never split, so
// double-width characters and emoji sequences stay intact.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	target := width - 1
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if used+cw > target {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	return b.String() + "…"
}
