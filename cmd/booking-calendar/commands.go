package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/booking-calendar/internal/api"
	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/classifier"
	"github.com/username/booking-calendar/internal/daemon"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/internal/view"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// newSession wires store, holidays and an initialized session
func newSession(ctx context.Context) (*view.Session, error) {
	session, err := buildSession()
	if err != nil {
		return nil, err
	}
	if err := session.Init(ctx, dateutil.Today()); err != nil {
		return nil, err
	}
	return session, nil
}

func buildSession() (*view.Session, error) {
	holidays, err := newHolidayProvider(cfg.Holidays, logger)
	if err != nil {
		return nil, err
	}
	return view.NewSession(newStore(), holidays, logger), nil
}

func showCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a month of the booking calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := newSession(ctx)
			if err != nil {
				return err
			}

			if month != "" {
				target, err := parseMonth(month)
				if err != nil {
					return err
				}
				if err := session.Goto(ctx, target); err != nil {
					return err
				}
			}

			return view.WriteText(cmd.OutOrStdout(), session.Render())
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show as YYYY-MM (default: current month)")
	return cmd
}

func dayCmd() *cobra.Command {
	var x, y, width float64

	cmd := &cobra.Command{
		Use:   "day YYYY-MM-DD",
		Short: "Show the state and bookings of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session, err := newSession(ctx)
			if err != nil {
				return err
			}
			if err := session.Goto(ctx, view.CursorFor(date)); err != nil {
				return err
			}

			state := session.Classifier().Classify(date)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s: %s", dateutil.Format(date), state.Display.Kind)
			if state.Holiday != nil {
				fmt.Fprintf(out, "  %s %s", state.Holiday.Emoji, state.Holiday.Name)
			}
			if state.IsBusySeason {
				fmt.Fprint(out, "  (busy season)")
			}
			fmt.Fprintln(out)

			if !state.Clickable() {
				return nil
			}

			if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
				b := classifier.ResolveClick(state, x, y, width)
				detail, err := view.NewDetail(*b)
				if err != nil {
					return err
				}
				return view.WriteDetail(out, detail)
			}

			for _, b := range uniqueBookings(state) {
				detail, err := view.NewDetail(b)
				if err != nil {
					logger.Warn("Skipping booking without valid dates", zap.Error(err))
					continue
				}
				if err := view.WriteDetail(out, detail); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Click x offset inside the cell")
	cmd.Flags().Float64Var(&y, "y", 0, "Click y offset inside the cell")
	cmd.Flags().Float64Var(&width, "width", 100, "Cell width for click resolution")
	return cmd
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [YEAR]",
		Short: "List holidays and the busy season of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := dateutil.Today().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
				year = y
			}

			provider, err := newHolidayProvider(cfg.Holidays, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			holidays := provider.HolidaysForYear(year)
			if len(holidays) == 0 {
				fmt.Fprintf(out, "No holidays known for %d (source: %s)\n", year, provider.Name())
				return nil
			}

			fmt.Fprintf(out, "Holidays %d (source: %s)\n", year, provider.Name())
			for _, h := range holidays {
				fmt.Fprintf(out, "  %s  %s %s\n", h.DateString(), h.Emoji, h.Name)
			}
			if season, ok := holiday.BusySeasonFor(provider, year); ok {
				fmt.Fprintf(out, "\nBusy season: %s .. %s\n", dateutil.Format(season.Start), dateutil.Format(season.End))
			}
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Redraw the current month after every periodic refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The daemon loads the session itself and keeps retrying while the backend is down
			session, err := buildSession()
			if err != nil {
				return err
			}

			d := daemon.NewDaemon(session, cfg.Refresh.GetInterval(), cfg.Refresh.SystemTray, cmd.OutOrStdout(), logger)
			return d.Start()
		},
	}
}

func serveCmd() *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered calendar data over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := newHolidayProvider(cfg.Holidays, logger)
			if err != nil {
				return err
			}

			handler := api.NewHandler(newStore(), holidays, logger)

			refresher := daemon.NewRefresher(handler, cfg.Refresh.GetInterval(), nil, logger)
			if err := refresher.Start(); err != nil {
				return err
			}
			defer func() {
				select {
				case <-refresher.Stop().Done():
				case <-time.After(5 * time.Second):
					logger.Warn("Refresh still running at shutdown")
				}
			}()

			if bind == "" {
				bind = cfg.Server.Bind
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(bind, handler, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default: server.bind)")
	return cmd
}

func parseMonth(s string) (view.Cursor, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return view.Cursor{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return view.CursorFor(t), nil
}

// uniqueBookings returns the bookings touching a day: departing, staying, arriving
func uniqueBookings(state classifier.DayState) []booking.Booking {
	var result []booking.Booking
	seen := make(map[*booking.Booking]bool)
	for _, b := range []*booking.Booking{state.Checkout, state.Occupant, state.Checkin} {
		if b == nil || seen[b] {
			continue
		}
		seen[b] = true
		result = append(result, *b)
	}
	return result
}
