package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/popcorn/internal/model"
)

const (
	posterPlaceholder = "no-movie.png"
	missingValue      = "N/A"

	cardWidth = 34
	cardGap   = 1
)

// cardFields is the display projection of one movie.
type cardFields struct {
	ID       int
	Poster   string
	Title    string
	Rating   string
	Year     string
	Language string
}

// projectCard derives display values from m without modifying it.
func projectCard(m model.MovieSummary, imageBaseURL string) cardFields {
	f := cardFields{
		ID:       m.ID,
		Poster:   posterPlaceholder,
		Title:    m.Title,
		Rating:   missingValue,
		Year:     missingValue,
		Language: strings.ToUpper(m.OriginalLanguage),
	}
	if m.PosterPath != "" {
		f.Poster = strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(m.PosterPath, "/")
	}
	if m.VoteAverage != 0 {
		f.Rating = fmt.Sprintf("%.1f", m.VoteAverage)
	}
	if m.ReleaseDate != "" {
		f.Year, _, _ = strings.Cut(m.ReleaseDate, "-")
	}
	return f
}

// renderedCard is one card keyed by its movie ID.
type renderedCard struct {
	ID   int
	View string
}

// renderCard lays out a single result card.
func renderCard(f cardFields) string {
	inner := cardWidth - 4 // border + padding

	poster := cardPosterStyle.MaxWidth(inner).Render(f.Poster)
	title := cardTitleStyle.Width(inner).Render(f.Title)
	meta := ratingStyle.Render("★ "+f.Rating) +
		cardMetaStyle.Render(" • "+f.Language+" • "+f.Year)

	return cardStyle.Width(cardWidth - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, poster, title, meta),
	)
}

// renderCards renders movies in the order given.
func renderCards(movies []model.MovieSummary, imageBaseURL string) []renderedCard {
	cards := make([]renderedCard, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, renderedCard{
			ID:   m.ID,
			View: renderCard(projectCard(m, imageBaseURL)),
		})
	}
	return cards
}

// layoutCards arranges cards left to right, top to bottom within width.
func layoutCards(cards []renderedCard, width int) string {
	if len(cards) == 0 {
		return ""
	}

	cols := max(1, (width+cardGap)/(cardWidth+cardGap))
	spacer := strings.Repeat(" ", cardGap)

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, spacer)
			}
			cells = append(cells, cards[i].View)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
