package booking

import (
	"errors"
	"fmt"
)

// ErrFetch is matched by every FetchError
var ErrFetch = errors.New("fetch failed")

// FetchError reports a failed backend call: transport failure,
// non-2xx status or a malformed body
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) hold for any FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
