package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/classifier"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrYearUnavailable is returned when navigation reaches a year the backend does not serve
var ErrYearUnavailable = errors.New("year not available")

// BookingSource is the read side of the booking store used by the view
type BookingSource interface {
	ListAvailableYears(ctx context.Context) ([]int, int, error)
	ListBookings(ctx context.Context, year int) (booking.Snapshot, error)
	Snapshot(year int) (booking.Snapshot, bool)
	HasYear(year int) bool
}

// Session is the navigation state of one calendar display: the month
// shown and the year whose bookings are loaded.
type Session struct {
	source   BookingSource
	holidays holiday.Provider
	logger   *zap.Logger

	// navMu serializes operations that may fetch; mu guards the fields
	navMu        sync.Mutex
	mu           sync.RWMutex
	cursor       Cursor
	selectedYear int
	ready        bool
}

// NewSession creates a session. Init, or a Refresh that performs it, must
// succeed before the session has anything to render.
func NewSession(source BookingSource, holidays holiday.Provider, logger *zap.Logger) *Session {
	return &Session{
		source:   source,
		holidays: holidays,
		logger:   logger,
	}
}

// Init loads the year list and the bookings of the backend's current year.
// The cursor starts at today's month inside the selected year.
func (s *Session) Init(ctx context.Context, today time.Time) error {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	_, current, err := s.source.ListAvailableYears(ctx)
	if err != nil {
		return fmt.Errorf("failed to list years: %w", err)
	}
	if current == 0 {
		current = today.Year()
	}

	s.mu.Lock()
	s.selectedYear = current
	s.cursor = Cursor{Year: current, Month: int(today.Month()) - 1}
	s.mu.Unlock()

	if _, err := s.source.ListBookings(ctx, current); err != nil {
		return fmt.Errorf("failed to load bookings for %d: %w", current, err)
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	s.logger.Info("Calendar session initialized",
		zap.Int("year", current),
		zap.String("month", s.Cursor().Title()))
	return nil
}

// NextMonth moves the cursor forward one month
func (s *Session) NextMonth(ctx context.Context) error {
	return s.move(ctx, s.Cursor().Next())
}

// PrevMonth moves the cursor back one month
func (s *Session) PrevMonth(ctx context.Context) error {
	return s.move(ctx, s.Cursor().Prev())
}

// move applies a month step. Crossing into a year the backend does not
// serve leaves the cursor where it was.
func (s *Session) move(ctx context.Context, next Cursor) error {
	if next.Year != s.SelectedYear() && !s.source.HasYear(next.Year) {
		s.logger.Debug("Navigation blocked, year not available", zap.Int("year", next.Year))
		return fmt.Errorf("%w: %d", ErrYearUnavailable, next.Year)
	}
	return s.Goto(ctx, next)
}

// SelectYear jumps to the same month of another year
func (s *Session) SelectYear(ctx context.Context, year int) error {
	return s.Goto(ctx, Cursor{Year: year, Month: s.Cursor().Month})
}

// Goto shows an arbitrary month, loading its year when it differs from the selected one
func (s *Session) Goto(ctx context.Context, target Cursor) error {
	if !target.Valid() {
		return fmt.Errorf("invalid month %d", target.Month+1)
	}

	s.navMu.Lock()
	defer s.navMu.Unlock()

	if target.Year == s.SelectedYear() {
		s.mu.Lock()
		s.cursor = target
		s.mu.Unlock()
		return nil
	}

	if !s.source.HasYear(target.Year) {
		return fmt.Errorf("%w: %d", ErrYearUnavailable, target.Year)
	}

	s.mu.Lock()
	s.selectedYear = target.Year
	s.cursor = target
	s.mu.Unlock()

	if _, err := s.source.ListBookings(ctx, target.Year); err != nil {
		return fmt.Errorf("failed to load bookings for %d: %w", target.Year, err)
	}
	return nil
}

// Refresh refetches the selected year. On failure the cached bookings stay in place.
// A session whose Init never succeeded is initialized instead.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.Ready() {
		return s.Init(ctx, dateutil.Today())
	}

	year := s.SelectedYear()
	if _, err := s.source.ListBookings(ctx, year); err != nil {
		return fmt.Errorf("failed to refresh bookings for %d: %w", year, err)
	}
	return nil
}

// Ready reports whether Init has completed
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Cursor returns the displayed month
func (s *Session) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// SelectedYear returns the year whose bookings are loaded
func (s *Session) SelectedYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedYear
}

// Classifier returns a classifier over the cached bookings of the selected year
func (s *Session) Classifier() *classifier.Classifier {
	return ClassifierFor(s.source, s.holidays, s.logger, s.SelectedYear())
}

// Render renders the displayed month
func (s *Session) Render() MonthGrid {
	return RenderMonth(s.Classifier(), s.Cursor())
}

// ClassifierFor builds a classifier over whatever the source has cached for year.
// A year that was never fetched yields an empty booking set.
func ClassifierFor(source BookingSource, holidays holiday.Provider, logger *zap.Logger, year int) *classifier.Classifier {
	snap, ok := source.Snapshot(year)
	if !ok {
		logger.Debug("No cached bookings for year", zap.Int("year", year))
	}
	return classifier.New(snap.Bookings, holidays, logger)
}
