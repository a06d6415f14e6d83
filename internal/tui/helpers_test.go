package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/popcorn/internal/model"
)

type stubResponse struct {
	movies []model.MovieSummary
	err    error
}

// stubFetcher answers per term and records every requested term.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	calls     []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{responses: make(map[string]stubResponse)}
}

func (s *stubFetcher) respond(term string, movies []model.MovieSummary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[term] = stubResponse{movies: movies, err: err}
}

func (s *stubFetcher) FetchMovies(_ context.Context, term string) ([]model.MovieSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, term)
	r := s.responses[term]
	return r.movies, r.err
}

func (s *stubFetcher) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestPage(fetcher model.MovieFetcher) *SearchPage {
	p := NewSearchPage(fetcher, Options{
		Debounce:     time.Millisecond,
		ImageBaseURL: "https://img.test/w500",
		Logger:       zerolog.Nop(),
	})
	p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return p
}

// collect runs cmd and every command nested in a batch, concurrently, and
// returns the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		msgs []tea.Msg
		run  func(tea.Cmd)
	)
	run = func(c tea.Cmd) {
		defer wg.Done()
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, inner := range batch {
				if inner != nil {
					wg.Add(1)
					go run(inner)
				}
			}
			return
		}
		if msg != nil {
			mu.Lock()
			msgs = append(msgs, msg)
			mu.Unlock()
		}
	}

	wg.Add(1)
	go run(cmd)
	wg.Wait()
	return msgs
}

// msgsOf filters msgs down to type T.
func msgsOf[T any](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func deliver[T any](t *testing.T, p *SearchPage, cmd tea.Cmd) []T {
	t.Helper()
	found := msgsOf[T](collect(cmd))
	for _, m := range found {
		p.Update(m)
	}
	return found
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
