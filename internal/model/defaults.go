package model

import "time"

// Shared defaults used by both the TUI and the headless API.
const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultDebounce     = 500 * time.Millisecond
	DefaultSkin         = "default"
	DefaultAPIAddr      = "127.0.0.1:3000"
)
