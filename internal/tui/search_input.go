package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const searchCharLimit = 100

// SearchInput is the controlled text field. Every edit is reported through
// onChange synchronously, before Update returns.
type SearchInput struct {
	input    textinput.Model
	onChange func(value string) tea.Cmd
}

// NewSearchInput creates a focused field bound to onChange.
func NewSearchInput(onChange func(value string) tea.Cmd) SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.Prompt = "🔍 "
	ti.CharLimit = searchCharLimit
	ti.Focus()

	return SearchInput{
		input:    ti,
		onChange: onChange,
	}
}

// Value returns the current text.
func (s SearchInput) Value() string {
	return s.input.Value()
}

// SetWidth sets the visible width of the field.
func (s *SearchInput) SetWidth(w int) {
	s.input.Width = max(1, w)
}

// SetValue replaces the text, reporting it like a keystroke would.
func (s *SearchInput) SetValue(v string) tea.Cmd {
	before := s.input.Value()
	s.input.SetValue(v)
	return s.changed(before)
}

// Update passes msg to the field and reports a changed value.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	before := s.input.Value()

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	return s, tea.Batch(cmd, s.changed(before))
}

func (s SearchInput) changed(before string) tea.Cmd {
	after := s.input.Value()
	if after == before || s.onChange == nil {
		return nil
	}
	return s.onChange(after)
}

func (s SearchInput) View() string {
	return s.input.View()
}
