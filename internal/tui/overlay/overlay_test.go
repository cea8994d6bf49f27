package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenter(t *testing.T) {
	bg := strings.Join([]string{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	}, "\n")
	fg := "ab\ncd"

	want := strings.Join([]string{
		"..........",
		"....ab....",
		"....cd....",
		"..........",
		"..........",
	}, "\n")
	assert.Equal(t, want, Center(bg, fg))
}

func TestCenterLargerForeground(t *testing.T) {
	got := Center("...\n...", "abcdef\nghijkl\nmnopqr")
	assert.Equal(t, "abcdef\nghijkl", got, "rows past the background are dropped")
}

func TestCenterShortBackgroundLine(t *testing.T) {
	got := Center("......\n.\n......", "xy")
	assert.Equal(t, "......\n. xy\n......", got)
}
