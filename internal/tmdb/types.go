package tmdb

import "github.com/tinytelemetry/popcorn/internal/model"

// listResponse is the subset of the search/discover payload we consume.
// Response and Error are an optional failure signal independent of HTTP status.
type listResponse struct {
	Page         int                  `json:"page"`
	Results      []model.MovieSummary `json:"results"`
	TotalPages   int                  `json:"total_pages"`
	TotalResults int                  `json:"total_results"`
	Response     string               `json:"Response,omitempty"`
	Error        string               `json:"Error,omitempty"`
}

func (r listResponse) failed() bool {
	return r.Response == "False"
}
