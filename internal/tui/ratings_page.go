package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/popcorn/internal/model"
)

const (
	ratingsBarWidth = 2
	ratingsBarGap   = 1
	ratingsLegend   = 36
)

// RatingsPage charts the vote averages of the latest result set. It reads
// results through source and never issues requests itself.
type RatingsPage struct {
	source func() []model.MovieSummary
	keys   KeyMap
	help   help.Model
}

// NewRatingsPage creates the page. source is typically SearchPage.Movies.
func NewRatingsPage(source func() []model.MovieSummary) *RatingsPage {
	return &RatingsPage{
		source: source,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (r *RatingsPage) ID() string    { return RatingsPageID }
func (r *RatingsPage) Init() tea.Cmd { return nil }

func (r *RatingsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.ForceQuit):
			return tea.Quit, nil
		case key.Matches(msg, r.keys.Back):
			return nil, navTo(SearchPageID)
		}
	}
	return nil, nil
}

func (r *RatingsPage) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Initializing..."
	}
	if width < minWidth || height < minHeight {
		return "Terminal too small. Resize to at least 40x14."
	}

	var movies []model.MovieSummary
	if r.source != nil {
		movies = r.source()
	}

	title := chartTitleStyle.Render("Ratings")
	footer := helpStyle.Render(r.help.View(ratingsHelp{keys: r.keys}))
	bodyHeight := height - lipgloss.Height(title) - lipgloss.Height(footer)

	var body string
	if len(movies) == 0 {
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("No data available"))
	} else {
		body = r.renderChart(movies, width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

// chartedMovies returns the movies that fit as bars in chartWidth, in API order.
func chartedMovies(movies []model.MovieSummary, chartWidth int) []model.MovieSummary {
	maxBars := max(1, (chartWidth+ratingsBarGap)/(ratingsBarWidth+ratingsBarGap))
	if len(movies) > maxBars {
		return movies[:maxBars]
	}
	return movies
}

func (r *RatingsPage) renderChart(movies []model.MovieSummary, width, height int) string {
	chartWidth := max(10, width-ratingsLegend-2)
	chartHeight := max(4, height)
	shown := chartedMovies(movies, chartWidth)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(ratingsBarGap),
		barchart.WithBarWidth(ratingsBarWidth),
		barchart.WithNoAxis(),
	)

	barStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Background(ColorPrimary)
	for _, m := range shown {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: m.Title, Value: m.VoteAverage, Style: barStyle},
			},
		})
	}

	bc.Draw()

	legend := lipgloss.NewStyle().Width(ratingsLegend).Height(chartHeight).
		Render(ratingsLegendText(shown, chartHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend)
}

// ratingsSummary returns min, mean and max vote averages over rated movies.
// ok is false when no movie carries a rating.
func ratingsSummary(movies []model.MovieSummary) (lo, mean, hi float64, ok bool) {
	var sum float64
	var n int
	for _, m := range movies {
		if m.VoteAverage == 0 {
			continue
		}
		if n == 0 || m.VoteAverage < lo {
			lo = m.VoteAverage
		}
		if n == 0 || m.VoteAverage > hi {
			hi = m.VoteAverage
		}
		sum += m.VoteAverage
		n++
	}
	if n == 0 {
		return 0, 0, 0, false
	}
	return lo, sum / float64(n), hi, true
}

func ratingsLegendText(movies []model.MovieSummary, maxLines int) string {
	var b strings.Builder

	if lo, mean, hi, ok := ratingsSummary(movies); ok {
		fmt.Fprintf(&b, "Min %.1f | Avg %.1f | Max %.1f\n", lo, mean, hi)
	} else {
		b.WriteString("No ratings\n")
	}

	lines := 1
	for i, m := range movies {
		if lines >= maxLines {
			break
		}
		f := projectCard(m, "")
		name := m.Title
		if len([]rune(name)) > ratingsLegend-10 {
			name = string([]rune(name)[:ratingsLegend-13]) + "..."
		}
		fmt.Fprintf(&b, "%2d %s %s\n", i+1, ratingStyle.Render(fmt.Sprintf("%4s", f.Rating)), name)
		lines++
	}
	return strings.TrimRight(b.String(), "\n")
}
