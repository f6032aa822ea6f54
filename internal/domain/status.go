package domain

// SessionStatus is the published state of a search session.
// It is one of StatusLoading, StatusError or StatusReady.
type SessionStatus interface {
	isSessionStatus()
}

// StatusLoading means a request for the current query is in flight
type StatusLoading struct{}

// StatusError carries the user-visible message of a failed search
type StatusError struct {
	Message string
}

// StatusReady carries the results of the current query (nil for short queries)
type StatusReady struct {
	Results []SearchResult
}

func (StatusLoading) isSessionStatus() {}
func (StatusError) isSessionStatus()   {}
func (StatusReady) isSessionStatus()   {}

// ResultsOf returns the results held by a ready status, nil otherwise
func ResultsOf(s SessionStatus) []SearchResult {
	if r, ok := s.(StatusReady); ok {
		return r.Results
	}
	return nil
}

// DetailStatus is the state of the detail loader.
// It is one of DetailClosed, DetailLoading, DetailFailed or DetailReady.
type DetailStatus interface {
	isDetailStatus()
}

// DetailClosed means no movie is selected
type DetailClosed struct{}

// DetailLoading means the selected movie's record is being fetched
type DetailLoading struct{}

// DetailFailed carries the user-visible message of a failed fetch
type DetailFailed struct {
	Message string
}

// DetailReady carries the loaded record
type DetailReady struct {
	Detail *MovieDetail
}

func (DetailClosed) isDetailStatus()  {}
func (DetailLoading) isDetailStatus() {}
func (DetailFailed) isDetailStatus()  {}
func (DetailReady) isDetailStatus()   {}
