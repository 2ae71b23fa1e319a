package reardiff

import "fmt"

// ConnectivityError indicates the request never reached the API: connection
// refused, host not found, or the configured timeout elapsed.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("rear-diff unreachable (%s): %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// APIError indicates the API answered with a non-2xx status.
type APIError struct {
	Status int
	Body   string
	URL    string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("rear-diff returned status %d for %s", e.Status, e.URL)
	}
	return fmt.Sprintf("rear-diff returned status %d for %s: %s", e.Status, e.URL, e.Body)
}

// InvalidIDError indicates a mutation was requested with an identifier that
// does not match the title id format. No request is sent in this case.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid title id %q: want tt followed by 7 or 8 digits", e.ID)
}
