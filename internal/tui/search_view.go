package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/popcorn/internal/model"
)

const (
	minWidth  = 40
	minHeight = 14

	viewPadding = 1
)

// contentWidth returns the width available inside the page padding.
func (p *SearchPage) contentWidth() int {
	return max(minWidth, p.width-2*viewPadding)
}

// layout sizes the field and the result viewport for the current window.
func (p *SearchPage) layout() {
	w := p.contentWidth()
	p.input.SetWidth(w - 8)
	p.help.Width = w

	p.results.Width = w
	p.results.Height = p.resultsHeight()
	p.refreshResults()
}

// resultsHeight is what remains after the header and the help line.
func (p *SearchPage) resultsHeight() int {
	used := lipgloss.Height(p.renderHeader()) + 1
	return max(1, p.height-used)
}

// View renders the page.
func (p *SearchPage) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Initializing..."
	}
	if width < minWidth || height < minHeight {
		return "Terminal too small. Resize to at least 40x14."
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		p.renderHeader(),
		p.renderResults(),
		helpStyle.Render(p.help.View(p.keys)),
	)
	return lipgloss.NewStyle().Padding(0, viewPadding).Render(body)
}

func (p *SearchPage) renderHeader() string {
	heading := headingStyle.Render("Find Your ") +
		renderGradient("Movie") +
		headingStyle.Render(" Rating")

	box := searchBoxStyle.Width(p.contentWidth() - 2).Render(p.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		renderGradient(windowTitle),
		heading,
		box,
		sectionTitleStyle.Render("All Movies"),
	)
}

// renderResults picks exactly one of the loading, error and card branches.
func (p *SearchPage) renderResults() string {
	w, h := p.contentWidth(), p.resultsHeight()

	switch p.fetch.Status {
	case model.FetchLoading:
		return renderLoadingIndicator(w, h)
	case model.FetchFailure:
		return lipgloss.NewStyle().Height(h).Render(errorStyle.Render(p.fetch.Message))
	case model.FetchSuccess:
		return lipgloss.NewStyle().Height(h).Render(p.results.View())
	default:
		return lipgloss.NewStyle().Height(h).Render("")
	}
}

// renderGradient colours each rune of s along the banner palette.
func renderGradient(s string) string {
	runes := []rune(s)
	if len(bannerColors) == 0 {
		return headingStyle.Render(s)
	}

	var out string
	for i, r := range runes {
		c := bannerColors[i*len(bannerColors)/len(runes)]
		out += lipgloss.NewStyle().Bold(true).Foreground(c).Render(string(r))
	}
	return out
}
