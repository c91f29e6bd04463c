package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/classifier"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/internal/view"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Handler serves rendered calendar data over HTTP
type Handler struct {
	source   view.BookingSource
	holidays holiday.Provider
	logger   *zap.Logger
}

// NewHandler creates a handler reading bookings from source
func NewHandler(source view.BookingSource, holidays holiday.Provider, logger *zap.Logger) *Handler {
	return &Handler{
		source:   source,
		holidays: holidays,
		logger:   logger,
	}
}

type dayResponse struct {
	Cell     view.Cell     `json:"cell"`
	Bookings []view.Detail `json:"bookings"`
}

type selectResponse struct {
	Date    string          `json:"date"`
	Booking booking.Booking `json:"booking"`
	Detail  view.Detail     `json:"detail"`
}

type holidaysResponse struct {
	Year       int               `json:"year"`
	Source     string            `json:"source"`
	Holidays   []holiday.Holiday `json:"holidays"`
	BusySeason *seasonResponse   `json:"busySeason,omitempty"`
}

type seasonResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Month renders one month; the month path segment is 1-based
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		writeError(w, errBadRequest("invalid year"))
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		writeError(w, errBadRequest("month must be 1-12"))
		return
	}

	c, herr := h.classifierFor(r.Context(), year)
	if herr != nil {
		writeError(w, herr)
		return
	}

	writeJSON(w, http.StatusOK, view.RenderMonth(c, view.Cursor{Year: year, Month: month - 1}))
}

// Day returns one day's cell and the details of every booking touching it
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	state, herr := h.dayState(r)
	if herr != nil {
		writeError(w, herr)
		return
	}

	resp := dayResponse{Cell: view.RenderDay(state), Bookings: []view.Detail{}}
	seen := make(map[*booking.Booking]bool)
	for _, b := range []*booking.Booking{state.Checkout, state.Occupant, state.Checkin} {
		if b == nil || seen[b] {
			continue
		}
		seen[b] = true
		if d, err := view.NewDetail(*b); err == nil {
			resp.Bookings = append(resp.Bookings, d)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Select resolves a click at (x, y) inside a cell of the given width
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	state, herr := h.dayState(r)
	if herr != nil {
		writeError(w, herr)
		return
	}

	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	width, errW := strconv.ParseFloat(q.Get("width"), 64)
	if errX != nil || errY != nil || errW != nil || width <= 0 {
		writeError(w, errBadRequest("x, y and a positive width are required"))
		return
	}

	b := classifier.ResolveClick(state, x, y, width)
	if b == nil {
		writeError(w, errNotFound("no booking on this day"))
		return
	}

	detail, err := view.NewDetail(*b)
	if err != nil {
		writeError(w, NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, selectResponse{
		Date:    dateutil.Format(state.Date),
		Booking: *b,
		Detail:  detail,
	})
}

// Holidays lists the holidays of a year and its busy season
func (h *Handler) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeError(w, errBadRequest("invalid year"))
		return
	}

	resp := holidaysResponse{
		Year:     year,
		Source:   h.holidays.Name(),
		Holidays: append([]holiday.Holiday{}, h.holidays.HolidaysForYear(year)...),
	}
	if season, ok := holiday.BusySeasonFor(h.holidays, year); ok {
		resp.BusySeason = &seasonResponse{
			Start: dateutil.Format(season.Start),
			End:   dateutil.Format(season.End),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Refresh refetches the year list and every cached year
func (h *Handler) Refresh(ctx context.Context) error {
	years, _, err := h.source.ListAvailableYears(ctx)
	if err != nil {
		return err
	}
	var firstErr error
	for _, year := range years {
		if _, ok := h.source.Snapshot(year); !ok {
			continue
		}
		if _, err := h.source.ListBookings(ctx, year); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *Handler) dayState(r *http.Request) (classifier.DayState, *HTTPError) {
	date, err := dateutil.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		return classifier.DayState{}, errBadRequest("invalid date")
	}

	c, herr := h.classifierFor(r.Context(), date.Year())
	if herr != nil {
		return classifier.DayState{}, herr
	}
	return c.Classify(date), nil
}

// classifierFor serves a year from cache, fetching it on first use
func (h *Handler) classifierFor(ctx context.Context, year int) (*classifier.Classifier, *HTTPError) {
	if _, ok := h.source.Snapshot(year); ok {
		return view.ClassifierFor(h.source, h.holidays, h.logger, year), nil
	}

	if !h.source.HasYear(year) {
		if _, _, err := h.source.ListAvailableYears(ctx); err != nil {
			h.logger.Error("Failed to list years", zap.Error(err))
			return nil, errBadGateway("booking backend unavailable")
		}
		if !h.source.HasYear(year) {
			return nil, errNotFound(fmt.Sprintf("no bookings for year %d", year))
		}
	}

	if _, err := h.source.ListBookings(ctx, year); err != nil {
		h.logger.Error("Failed to fetch bookings", zap.Int("year", year), zap.Error(err))
		return nil, errBadGateway("booking backend unavailable")
	}
	return view.ClassifierFor(h.source, h.holidays, h.logger, year), nil
}
