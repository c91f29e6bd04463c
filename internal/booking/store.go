package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Store fetches bookings and available years from the backend and caches
// them in memory. Readers always see a whole immutable state; a fetch
// replaces it atomically and a failed fetch leaves it untouched.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	writeMu sync.Mutex
	state   atomic.Pointer[cacheState]
}

type cacheState struct {
	years       []int
	currentYear int
	snapshots   map[int]Snapshot
}

// flexibleYear accepts a year encoded either as a JSON string or number
type flexibleYear int

// UnmarshalJSON implements json.Unmarshaler for flexibleYear
func (y *flexibleYear) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("year %q: %w", s, err)
		}
		*y = flexibleYear(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*y = flexibleYear(n)
		return nil
	}

	return fmt.Errorf("cannot unmarshal year %s", string(b))
}

// yearsResponse fields are pointers so that absent fields can be told apart
// from zero values.
type yearsResponse struct {
	Years       *[]flexibleYear `json:"years"`
	CurrentYear *flexibleYear   `json:"currentYear"`
}

type bookingsResponse struct {
	Bookings  []Booking    `json:"bookings"`
	LastFetch string       `json:"lastFetch"`
	Year      flexibleYear `json:"year"`
}

// NewStore creates a new booking store for the backend at baseURL
func NewStore(baseURL string, timeout time.Duration, logger *zap.Logger) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	s := &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	s.state.Store(&cacheState{snapshots: map[int]Snapshot{}})
	return s
}

// ListAvailableYears fetches the years for which bookings exist
func (s *Store) ListAvailableYears(ctx context.Context) ([]int, int, error) {
	var resp yearsResponse
	if err := s.doRequest(ctx, "list years", "/api/years", nil, &resp); err != nil {
		return nil, 0, err
	}
	if resp.Years == nil || resp.CurrentYear == nil {
		return nil, 0, &FetchError{
			Op:         "list years",
			URL:        s.baseURL + "/api/years",
			StatusCode: http.StatusOK,
			Err:        errors.New("response is missing years or currentYear"),
		}
	}

	years := make([]int, len(*resp.Years))
	for i, y := range *resp.Years {
		years[i] = int(y)
	}
	current := int(*resp.CurrentYear)

	s.update(func(next *cacheState) {
		next.years = years
		next.currentYear = current
	})

	s.logger.Info("Available years fetched",
		zap.Ints("years", years),
		zap.Int("current_year", current))

	return append([]int(nil), years...), current, nil
}

// ListBookings fetches all bookings of a year and replaces the cached set
func (s *Store) ListBookings(ctx context.Context, year int) (Snapshot, error) {
	started := time.Now()

	query := url.Values{}
	query.Set("year", strconv.Itoa(year))

	var resp bookingsResponse
	if err := s.doRequest(ctx, "list bookings", "/api/bookings", query, &resp); err != nil {
		return Snapshot{}, err
	}

	fetchedAt, err := time.Parse(time.RFC3339, resp.LastFetch)
	if err != nil {
		s.logger.Warn("Backend sent unparsable lastFetch, using local time",
			zap.String("last_fetch", resp.LastFetch),
			zap.Error(err))
		fetchedAt = time.Now()
	}

	bookings := resp.Bookings
	if bookings == nil {
		bookings = []Booking{}
	}
	s.auditBookings(year, bookings)

	snap := Snapshot{
		Year:      year,
		Bookings:  bookings,
		FetchedAt: fetchedAt,
	}

	s.update(func(next *cacheState) {
		next.snapshots[year] = snap
	})

	s.logger.Info("Bookings fetched",
		zap.Int("year", year),
		zap.Int("count", len(bookings)),
		zap.Time("last_fetch", fetchedAt),
		zap.Duration("took", time.Since(started)))

	return snap, nil
}

// Snapshot returns the cached booking set of a year
func (s *Store) Snapshot(year int) (Snapshot, bool) {
	snap, ok := s.state.Load().snapshots[year]
	return snap, ok
}

// Years returns the cached available years and current year
func (s *Store) Years() ([]int, int) {
	st := s.state.Load()
	return append([]int(nil), st.years...), st.currentYear
}

// HasYear reports whether the backend advertised data for year
func (s *Store) HasYear(year int) bool {
	for _, y := range s.state.Load().years {
		if y == year {
			return true
		}
	}
	return false
}

// update applies fn to a copy of the current state and publishes it
func (s *Store) update(fn func(next *cacheState)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.state.Load()
	next := &cacheState{
		years:       cur.years,
		currentYear: cur.currentYear,
		snapshots:   make(map[int]Snapshot, len(cur.snapshots)+1),
	}
	for y, snap := range cur.snapshots {
		next.snapshots[y] = snap
	}
	fn(next)
	s.state.Store(next)
}

// auditBookings logs bookings that can never match a day
func (s *Store) auditBookings(year int, bookings []Booking) {
	for i, b := range bookings {
		if _, _, ok := b.Interval(); !ok {
			s.logger.Warn("Booking has malformed or empty interval, it will not be displayed",
				zap.Int("year", year),
				zap.Int("index", i),
				zap.String("start_date", b.StartDate),
				zap.String("end_date", b.EndDate))
			continue
		}
		if strings.TrimSpace(b.Category) == "" {
			s.logger.Warn("Booking without category, showing it as owner reservation",
				zap.Int("year", year),
				zap.Int("index", i),
				zap.String("start_date", b.StartDate))
		}
	}
}

// doRequest performs a GET request against the backend and decodes the JSON body
func (s *Store) doRequest(ctx context.Context, op, path string, query url.Values, result interface{}) error {
	reqURL := s.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	s.logger.Debug("API request",
		zap.String("op", op),
		zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Op: op, URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, URL: reqURL, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(respBody)))}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	return nil
}
