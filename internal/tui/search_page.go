package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/popcorn/internal/debounce"
	"github.com/tinytelemetry/popcorn/internal/model"
	"github.com/tinytelemetry/popcorn/internal/tmdb"
)

const (
	SearchPageID  = "search"
	RatingsPageID = "ratings"

	windowTitle = "Popcorn Time 🍿"
)

var errNoFetcher = errors.New("no movie source configured")

// Options configures a SearchPage.
type Options struct {
	Context      context.Context
	Debounce     time.Duration
	ImageBaseURL string
	Logger       zerolog.Logger
}

// SearchPage is the application controller. It owns the search and fetch
// state, debounces typing into a settled term, runs one fetch cycle per
// settled-term change and picks which results branch to render.
type SearchPage struct {
	ctx          context.Context
	fetcher      model.MovieFetcher
	logger       zerolog.Logger
	imageBaseURL string
	keys         KeyMap

	input    SearchInput
	search   model.SearchState
	debounce *debounce.Timer
	fetch    model.FetchState
	seq      uint64

	results       viewport.Model
	help          help.Model
	spinnerActive bool

	width  int
	height int
}

// NewSearchPage creates the controller. fetcher is called once per cycle.
func NewSearchPage(fetcher model.MovieFetcher, opts Options) *SearchPage {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = model.DefaultDebounce
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = model.DefaultImageBaseURL
	}

	p := &SearchPage{
		ctx:          opts.Context,
		fetcher:      fetcher,
		logger:       opts.Logger.With().Str("component", "controller").Logger(),
		imageBaseURL: opts.ImageBaseURL,
		keys:         DefaultKeyMap(),
		debounce:     debounce.New(opts.Debounce),
		results:      viewport.New(0, 0),
		help:         help.New(),
	}
	p.input = NewSearchInput(p.onInputChange)
	return p
}

func (p *SearchPage) ID() string { return SearchPageID }

// Init starts the first fetch cycle for the initial empty settled term,
// which lists popular movies. Later calls, made when the page is shown
// again, leave the fetch state untouched.
func (p *SearchPage) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.SetWindowTitle(windowTitle)}
	if p.fetch.Status == model.FetchIdle {
		cmds = append(cmds, p.beginCycle(p.search.SettledTerm))
	}
	return tea.Batch(cmds...)
}

// Search returns the current search state.
func (p *SearchPage) Search() model.SearchState {
	return p.search
}

// Fetch returns the current fetch state.
func (p *SearchPage) Fetch() model.FetchState {
	return p.fetch
}

// Movies returns the latest successful result set, or nil.
func (p *SearchPage) Movies() []model.MovieSummary {
	if p.fetch.Status != model.FetchSuccess {
		return nil
	}
	return p.fetch.Movies
}

func (p *SearchPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.layout()
		return nil, nil

	case tea.KeyMsg:
		return p.handleKey(msg)

	case debounce.ExpiredMsg:
		term, ok := p.debounce.Settle(msg)
		if !ok {
			return nil, nil
		}
		return p.settle(term), nil

	case moviesLoadedMsg:
		p.applyResult(msg)
		return nil, nil

	case SpinnerTickMsg:
		if p.fetch.Loading() {
			return spinnerTickCmd(), nil
		}
		p.spinnerActive = false
		return nil, nil
	}

	// Cursor blink and other field-internal messages.
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

func (p *SearchPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.ForceQuit):
		return tea.Quit, nil
	case key.Matches(msg, p.keys.Ratings):
		return nil, navTo(RatingsPageID)
	case key.Matches(msg, p.keys.Clear):
		return p.input.SetValue(""), nil
	case key.Matches(msg, p.keys.Up):
		p.results.ScrollUp(1)
		return nil, nil
	case key.Matches(msg, p.keys.Down):
		p.results.ScrollDown(1)
		return nil, nil
	case key.Matches(msg, p.keys.PageUp):
		p.results.PageUp()
		return nil, nil
	case key.Matches(msg, p.keys.PageDown):
		p.results.PageDown()
		return nil, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

// onInputChange records the raw term and re-arms the debounce timer. Any
// expiry armed earlier is superseded.
func (p *SearchPage) onInputChange(value string) tea.Cmd {
	p.search.RawTerm = value
	return p.debounce.Arm(value)
}

// settle commits a debounced term. A term equal to the current settled term
// does not start a new cycle once the first cycle has run.
func (p *SearchPage) settle(term string) tea.Cmd {
	if term == p.search.SettledTerm && p.fetch.Status != model.FetchIdle {
		return nil
	}
	p.search.SettledTerm = term
	return p.beginCycle(term)
}

// beginCycle moves to Loading and issues the request for term. The previous
// cycle is not cancelled; its response is discarded when it arrives.
func (p *SearchPage) beginCycle(term string) tea.Cmd {
	p.seq++
	p.fetch = model.FetchState{
		Status: model.FetchLoading,
		Seq:    p.seq,
		Term:   term,
	}
	p.refreshResults()

	return tea.Batch(p.fetchMoviesCmd(p.seq, term), p.startSpinnerIfNeeded())
}

// startSpinnerIfNeeded starts the redraw tick unless one is already running.
func (p *SearchPage) startSpinnerIfNeeded() tea.Cmd {
	if p.spinnerActive {
		return nil
	}
	p.spinnerActive = true
	return spinnerTickCmd()
}

func (p *SearchPage) fetchMoviesCmd(seq uint64, term string) tea.Cmd {
	fetcher := p.fetcher
	ctx := p.ctx

	return func() tea.Msg {
		if fetcher == nil {
			return moviesLoadedMsg{seq: seq, term: term, err: errNoFetcher}
		}
		movies, err := fetcher.FetchMovies(ctx, term)
		return moviesLoadedMsg{seq: seq, term: term, movies: movies, err: err}
	}
}

// applyResult resolves the current cycle into Success or Failure.
func (p *SearchPage) applyResult(msg moviesLoadedMsg) {
	if msg.seq != p.fetch.Seq {
		p.logger.Debug().
			Uint64("seq", msg.seq).
			Uint64("current", p.fetch.Seq).
			Str("term", msg.term).
			Msg("Discarding stale response")
		return
	}

	if msg.err != nil {
		message := tmdb.FailureMessage(msg.err)
		if tmdb.IsAPIError(msg.err) {
			p.logger.Warn().Err(msg.err).Str("term", msg.term).Msg("API reported failure")
		} else {
			p.logger.Error().Err(msg.err).Str("term", msg.term).Msg("Error fetching movies")
		}
		p.fetch = model.FetchState{
			Status:  model.FetchFailure,
			Seq:     msg.seq,
			Term:    msg.term,
			Message: message,
		}
		p.refreshResults()
		return
	}

	movies := msg.movies
	if movies == nil {
		movies = []model.MovieSummary{}
	}
	p.fetch = model.FetchState{
		Status: model.FetchSuccess,
		Seq:    msg.seq,
		Term:   msg.term,
		Movies: movies,
	}
	p.refreshResults()
}

// refreshResults re-renders the card grid into the scroll viewport.
func (p *SearchPage) refreshResults() {
	if p.fetch.Status != model.FetchSuccess {
		p.results.SetContent("")
		return
	}
	cards := renderCards(p.fetch.Movies, p.imageBaseURL)
	p.results.SetContent(layoutCards(cards, p.contentWidth()))
	p.results.GotoTop()
}
