package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 24 * time.Hour
	// failed years are not retried for this long
	retryAfter = time.Minute
)

// RemoteProvider implements Provider using the date.nager.at public holiday API
type RemoteProvider struct {
	baseURL    string
	country    string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[int]*cachedYear
	failedAt   map[int]time.Time
	cacheMu    sync.RWMutex
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// publicHoliday represents one entry of the API response
type publicHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

// remoteKinds maps API holiday names (lower case) to kinds; unknown names are skipped
var remoteKinds = map[string]Kind{
	"new year's day":                       KindNewYearsDay,
	"martin luther king, jr. day":          KindMLKDay,
	"presidents day":                       KindPresidentsDay,
	"washington's birthday":                KindPresidentsDay,
	"easter sunday":                        KindEaster,
	"memorial day":                         KindMemorialDay,
	"juneteenth":                           KindJuneteenth,
	"juneteenth national independence day": KindJuneteenth,
	"independence day":                     KindIndependenceDay,
	"labor day":                            KindLaborDay,
	"labour day":                           KindLaborDay,
	"veterans day":                         KindVeteransDay,
	"thanksgiving day":                     KindThanksgiving,
	"christmas day":                        KindChristmas,
}

// NewRemoteProvider creates a new RemoteProvider instance
func NewRemoteProvider(baseURL, country string, cacheTTL time.Duration, logger *zap.Logger) *RemoteProvider {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &RemoteProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		country:  country,
		cacheTTL: cacheTTL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:   logger,
		cache:    make(map[int]*cachedYear),
		failedAt: make(map[int]time.Time),
	}
}

// Name returns the provider identifier
func (rp *RemoteProvider) Name() string {
	return "remote"
}

// HolidaysForYear returns the holidays of the year; fetch failures yield an empty slice
// and the year is not retried for a minute
func (rp *RemoteProvider) HolidaysForYear(year int) []Holiday {
	rp.cacheMu.RLock()
	failed, ok := rp.failedAt[year]
	rp.cacheMu.RUnlock()
	if ok && time.Since(failed) < retryAfter {
		return nil
	}

	holidays, err := rp.Fetch(context.Background(), year)
	if err != nil {
		rp.logger.Warn("Failed to fetch holidays",
			zap.Int("year", year),
			zap.Error(err))
		rp.cacheMu.Lock()
		rp.failedAt[year] = time.Now()
		rp.cacheMu.Unlock()
		return nil
	}
	return holidays
}

// Fetch returns the holidays of the year, served from cache while fresh
func (rp *RemoteProvider) Fetch(ctx context.Context, year int) ([]Holiday, error) {
	rp.cacheMu.RLock()
	if cached, ok := rp.cache[year]; ok {
		if time.Since(cached.fetchedAt) < rp.cacheTTL {
			rp.cacheMu.RUnlock()
			rp.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.data, nil
		}
	}
	rp.cacheMu.RUnlock()

	holidays, err := rp.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}

	rp.cacheMu.Lock()
	rp.cache[year] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	delete(rp.failedAt, year)
	rp.cacheMu.Unlock()

	rp.logger.Info("Holidays fetched and cached",
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// fetchYear fetches one year from the API
func (rp *RemoteProvider) fetchYear(ctx context.Context, year int) ([]Holiday, error) {
	// https://date.nager.at/api/v3/PublicHolidays/{year}/{country}
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", rp.baseURL, year, rp.country)

	rp.logger.Debug("Fetching holidays",
		zap.String("url", url),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := rp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var apiResp []publicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	holidays := make([]Holiday, 0, len(apiResp))
	for _, ph := range apiResp {
		kind, ok := remoteKinds[strings.ToLower(ph.LocalName)]
		if !ok {
			kind, ok = remoteKinds[strings.ToLower(ph.Name)]
		}
		if !ok {
			rp.logger.Debug("Skipping unknown holiday", zap.String("name", ph.Name))
			continue
		}

		date, err := dateutil.ParseDate(ph.Date)
		if err != nil {
			rp.logger.Warn("Failed to parse date",
				zap.String("date", ph.Date),
				zap.Error(err))
			continue
		}

		holidays = append(holidays, New(kind, date))
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays, nil
}
