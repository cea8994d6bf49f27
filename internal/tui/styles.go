package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"strings"
)

var ( // color scheme from https://github.com/morhetz/gruvbox

	fgColor               = lipgloss.AdaptiveColor{Light: "#282828", Dark: "#fbf1c7"}
	redColor              = lipgloss.AdaptiveColor{Light: "#9d0006", Dark: "#fb4934"}
	yellowColor           = lipgloss.AdaptiveColor{Light: "#b57614", Dark: "#fabd2f"}
	highlightColor        = lipgloss.AdaptiveColor{Light: "#4e562a", Dark: "#ECFD65"}
	midHighlightColor     = lipgloss.AdaptiveColor{Light: "#9DA947", Dark: "#9DA947"}
	subduedHighlightColor = lipgloss.AdaptiveColor{Light: "#ECFD65", Dark: "#4e562a"}
	grayColor             = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#444444"}

	generateGradient = func(base, target lipgloss.AdaptiveColor, steps int) []lipgloss.AdaptiveColor {
		bLight, _ := colorful.Hex(base.Light)
		bDark, _ := colorful.Hex(base.Dark)
		tLight, _ := colorful.Hex(target.Light)
		tDark, _ := colorful.Hex(target.Dark)
		gradient := make([]lipgloss.AdaptiveColor, steps)

		for i := range steps {
			factor := float64(i) / float64(steps)
			lighter := bLight.BlendLuv(tLight, factor)
			darker := bDark.BlendLuv(tDark, factor)
			gradient[i] = lipgloss.AdaptiveColor{
				Light: lighter.Hex(),
				Dark:  darker.Hex(),
			}
		}
		return gradient
	}
)

var ( // mainModel Styles

	mainContainerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(highlightColor).
		Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Margin(1, 0, 0, 0).
			Height(1).
			Italic(true).
			Foreground(highlightColor).
			Faint(true)

	detailStyle = lipgloss.NewStyle().
			Height(1).
			Foreground(midHighlightColor)
)

var ( // navModel Styles

	navTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	navTabStyle = lipgloss.NewStyle().
			Background(subduedHighlightColor).
			Foreground(highlightColor).
			Padding(0, 1).
			Align(lipgloss.Center)

	navActiveTabStyle = navTabStyle.
				Background(highlightColor).
				Foreground(subduedHighlightColor).
				Faint(true)

	navContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(subduedHighlightColor)
)

var ( // contentModel Styles

	customTableStyles = table.Styles{
		Header: table.DefaultStyles().Header.
			Foreground(highlightColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(subduedHighlightColor).
			BorderBottom(true).
			Bold(false),
		Selected: table.DefaultStyles().Selected.
			Background(subduedHighlightColor).
			Foreground(highlightColor).
			Italic(true),
		Cell: table.DefaultStyles().Cell.Foreground(midHighlightColor),
	}

	loadingStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor).
			Align(lipgloss.Center)

	emptyTipStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Faint(true).
			Italic(true).
			Bold(true)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Faint(true)
)

var ( // redirectModel Styles

	redirectContainerStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(yellowColor).
				Padding(1, 2)

	redirectHeaderStyle = lipgloss.NewStyle().
				Background(yellowColor).
				Foreground(fgColor).
				Padding(0, 1).
				Faint(true)

	redirectBodyStyle = lipgloss.NewStyle().
				Italic(true).
				Padding(1, 0).
				Foreground(highlightColor)

	redirectBtnStyle = lipgloss.NewStyle().
				Background(grayColor).
				Foreground(fgColor).
				Padding(0, 2).
				MarginLeft(1)
)

// gradientText colors each rune of s along the gradient from base to target.
func gradientText(s string, base, target lipgloss.AdaptiveColor) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	colors := generateGradient(base, target, len(runes))
	var sb strings.Builder
	for i, r := range runes {
		sb.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Bold(true).Render(string(r)))
	}
	return sb.String()
}
