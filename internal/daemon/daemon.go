package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/booking-calendar/internal/view"
	"go.uber.org/zap"
)

// Daemon keeps a calendar session fresh and redraws it after every refresh
type Daemon struct {
	session    *view.Session
	refresher  *Refresher
	out        io.Writer
	systemTray bool
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp
	outMu      sync.Mutex
}

// NewDaemon creates a daemon. A session that is not initialized yet is
// initialized by the first refresh, and retried on every tick until it succeeds.
func NewDaemon(session *view.Session, interval time.Duration, systemTray bool, out io.Writer, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	d := &Daemon{
		session:    session,
		out:        out,
		systemTray: systemTray,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
	d.refresher = NewRefresher(session, interval, d.render, logger)
	return d
}

// Start runs the daemon until Stop or SIGINT/SIGTERM
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.run()
		}
		d.trayApp = trayApp
		// Blocks until Quit
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.run()
}

// run draws the current month, starts the refresher and waits for shutdown
func (d *Daemon) run() error {
	if d.session.Ready() {
		d.render(nil)
	} else if err := d.refresher.RefreshNow(); err != nil {
		d.logger.Warn("Initial load failed, retrying on schedule",
			zap.Duration("interval", d.refresher.Interval()),
			zap.Error(err))
	}

	if err := d.refresher.Start(); err != nil {
		return err
	}
	defer func() {
		<-d.refresher.Stop().Done()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-d.ctx.Done():
		d.logger.Info("Daemon stopped")
	case sig := <-sigChan:
		d.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		d.Stop()
	}

	if d.trayApp != nil {
		d.trayApp.Stop()
	}
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// RefreshNow triggers an immediate refresh (called from tray menu)
func (d *Daemon) RefreshNow() {
	d.logger.Info("Manual refresh triggered")
	if err := d.refresher.RefreshNow(); err != nil {
		d.logger.Error("Manual refresh failed", zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.ShowNotification("Refresh Failed", fmt.Sprintf("Error: %v", err))
		}
		return
	}
	if d.trayApp != nil {
		d.trayApp.ShowNotification("Refresh Completed", "Bookings updated")
	}
}

// Status describes the displayed month and the last refresh
func (d *Daemon) Status() string {
	last, err := d.refresher.Status()

	month := "not loaded"
	if d.session.Ready() {
		month = d.session.Cursor().Title()
	}

	if last.IsZero() {
		return fmt.Sprintf("Month: %s\nNo refresh yet (every %s)", month, d.refresher.Interval())
	}
	result := "ok"
	if err != nil {
		result = err.Error()
	}
	return fmt.Sprintf("Month: %s\nLast refresh: %s (%s)\nInterval: %s",
		month, last.Format("2006-01-02 15:04:05"), result, d.refresher.Interval())
}

// render draws the month, or a placeholder before the first successful
// load, followed by the refresh error if there is one. The last good
// bookings stay on screen when a refresh fails.
func (d *Daemon) render(refreshErr error) {
	d.outMu.Lock()
	defer d.outMu.Unlock()

	if d.session.Ready() {
		if err := view.WriteText(d.out, d.session.Render()); err != nil {
			d.logger.Warn("Failed to draw calendar", zap.Error(err))
		}
	} else {
		fmt.Fprintln(d.out, "Calendar not loaded yet")
	}

	if refreshErr != nil {
		fmt.Fprintf(d.out, "! Refresh failed at %s: %v (retrying every %s)\n",
			time.Now().Format("15:04:05"), refreshErr, d.refresher.Interval())
	}
}
