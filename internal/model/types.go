package model

// MovieSummary is one entry of a search or discover result set.
// Values are decoded verbatim from the API and never modified afterwards.
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path,omitempty"` // "" = no poster
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date,omitempty"` // YYYY-MM-DD, "" = unknown
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview,omitempty"`
}

// SearchState holds the raw text field value and the debounced value derived from it.
type SearchState struct {
	RawTerm     string
	SettledTerm string
}

// FetchStatus tags the active branch of a FetchState.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchSuccess
	FetchFailure
)

func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchSuccess:
		return "success"
	case FetchFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FetchState describes one fetch cycle. Movies is only meaningful for
// FetchSuccess and Message only for FetchFailure.
type FetchState struct {
	Status  FetchStatus
	Seq     uint64 // cycle sequence number, increases with every settled-term change
	Term    string // settled term that started the cycle
	Movies  []MovieSummary
	Message string
}

// Loading reports whether a request for this cycle is still in flight.
func (s FetchState) Loading() bool {
	return s.Status == FetchLoading
}
