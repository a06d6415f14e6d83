package model

import "context"

// MovieFetcher resolves a settled term into a result set. An empty term
// requests the default popularity listing.
type MovieFetcher interface {
	FetchMovies(ctx context.Context, term string) ([]MovieSummary, error)
}
