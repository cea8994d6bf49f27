// Package overlay draws a foreground block on top of an already rendered view.
package overlay

import (
	"github.com/charmbracelet/x/ansi"
	"strings"
)

// Center places fg in the middle of bg, the cells of bg that fg covers are dropped.
// Both may contain ANSI sequences.
func Center(bg, fg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	left := max(0, (maxWidth(bgLines)-maxWidth(fgLines))/2)
	top := max(0, (len(bgLines)-len(fgLines))/2)

	for i, fgLine := range fgLines {
		j := top + i
		if j >= len(bgLines) {
			break
		}
		line := bgLines[j]
		if w := ansi.StringWidth(line); w < left {
			line += strings.Repeat(" ", left-w)
		}
		right := ansi.TruncateLeft(line, left+ansi.StringWidth(fgLine), "")
		bgLines[j] = ansi.Truncate(line, left, "") + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

func maxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
