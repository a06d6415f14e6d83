package tui

import "github.com/tinytelemetry/popcorn/internal/model"

// moviesLoadedMsg carries the outcome of one fetch cycle.
type moviesLoadedMsg struct {
	seq    uint64
	term   string
	movies []model.MovieSummary
	err    error
}
