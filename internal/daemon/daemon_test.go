package daemon

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/internal/view"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

type staticSource struct {
	snap booking.Snapshot
}

func (s *staticSource) ListAvailableYears(ctx context.Context) ([]int, int, error) {
	return []int{2025}, 2025, nil
}

func (s *staticSource) ListBookings(ctx context.Context, year int) (booking.Snapshot, error) {
	return s.snap, nil
}

func (s *staticSource) Snapshot(year int) (booking.Snapshot, bool) {
	return s.snap, year == 2025
}

func (s *staticSource) HasYear(year int) bool {
	return year == 2025
}

// flakySource fails its first year listings, then serves like staticSource
type flakySource struct {
	staticSource
	mu       sync.Mutex
	failures int
}

func (s *flakySource) ListAvailableYears(ctx context.Context) ([]int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return nil, 0, errors.New("backend unreachable")
	}
	return s.staticSource.ListAvailableYears(ctx)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestDaemon(t *testing.T, out *syncBuffer) *Daemon {
	t.Helper()

	src := &staticSource{snap: booking.Snapshot{
		Year:     2025,
		Bookings: []booking.Booking{{StartDate: "2025-07-04", EndDate: "2025-07-07", Category: "Guest"}},
	}}
	session := view.NewSession(src, holiday.NewComputedProvider(), zap.NewNop())
	if err := session.Init(context.Background(), dateutil.Date(2025, time.July, 1)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return NewDaemon(session, time.Minute, false, out, zap.NewNop())
}

func TestDaemon_StartDrawsAndStops(t *testing.T) {
	out := &syncBuffer{}
	d := newTestDaemon(t, out)

	done := make(chan error, 1)
	go func() { done <- d.Start() }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "July 2025") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}

	if !strings.Contains(out.String(), " 5#") {
		t.Errorf("calendar not drawn:\n%s", out.String())
	}
}

func TestDaemon_RefreshNowRedraws(t *testing.T) {
	out := &syncBuffer{}
	d := newTestDaemon(t, out)
	defer d.refresher.Stop()

	if !strings.Contains(d.Status(), "No refresh yet") {
		t.Errorf("Status() before refresh = %q", d.Status())
	}

	d.RefreshNow()

	if strings.Count(out.String(), "July 2025") != 1 {
		t.Errorf("expected one redraw after refresh, got:\n%s", out.String())
	}
	if !strings.Contains(d.Status(), "(ok)") {
		t.Errorf("Status() after refresh = %q", d.Status())
	}
}

func waitFor(out *syncBuffer, text string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), text) {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestDaemon_StartsWhenBackendDown(t *testing.T) {
	src := &flakySource{
		staticSource: staticSource{snap: booking.Snapshot{Year: 2025}},
		failures:     1,
	}
	session := view.NewSession(src, holiday.NewComputedProvider(), zap.NewNop())
	out := &syncBuffer{}
	d := NewDaemon(session, time.Minute, false, out, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- d.Start() }()

	if !waitFor(out, "! Refresh failed at") {
		t.Fatalf("failure not shown:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Calendar not loaded yet") || !strings.Contains(out.String(), "backend unreachable") {
		t.Errorf("unexpected output before first load:\n%s", out.String())
	}
	if !strings.Contains(d.Status(), "Month: not loaded") {
		t.Errorf("Status() before first load = %q", d.Status())
	}

	d.RefreshNow()

	if !session.Ready() {
		t.Fatal("session not initialized by the retry")
	}
	if !waitFor(out, " 2025") {
		t.Errorf("calendar not drawn after retry:\n%s", out.String())
	}
	if !strings.Contains(d.Status(), "(ok)") {
		t.Errorf("Status() after retry = %q", d.Status())
	}

	d.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestCalendarIcon(t *testing.T) {
	icon := calendarIcon()

	want := 6 + 16 + 40 + iconSize*iconSize*4 + iconSize*4
	if len(icon) != want {
		t.Fatalf("icon size = %d, want %d", len(icon), want)
	}
	if icon[2] != 1 || icon[4] != 1 || icon[6] != iconSize {
		t.Errorf("bad ICO header: % x", icon[:8])
	}
}

func TestDaemon_TrayFallsBackToConsole(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tray is available on windows")
	}

	out := &syncBuffer{}
	d := newTestDaemon(t, out)
	d.systemTray = true

	done := make(chan error, 1)
	go func() { done <- d.Start() }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "July 2025") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
	if d.trayApp != nil {
		t.Error("tray should not be set up on this platform")
	}
}
