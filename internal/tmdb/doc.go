// Package tmdb is a small client for the TMDB v3 movie listing endpoints.
//
// Only two requests are issued: a title search when a term is present and a
// popularity-sorted discover listing otherwise. Every failure is reported as
// either a *TransportError (the request did not yield a usable response) or
// an *APIError (the response body flagged an application-level failure).
// FailureMessage turns both into the text shown to users.
package tmdb
