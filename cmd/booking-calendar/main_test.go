package main

import (
	"testing"

	"github.com/username/booking-calendar/internal/config"
	"github.com/username/booking-calendar/internal/view"
	"go.uber.org/zap"
)

func TestNewHolidayProvider(t *testing.T) {
	tests := []struct {
		source   string
		wantName string
		wantErr  bool
	}{
		{"computed", "computed", false},
		{"table", "table", false},
		{"remote", "remote", false},
		{"table+computed", "table+computed", false},
		{"remote+table", "remote+table", false},
		{"ical", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			hc := config.HolidaysConfig{Source: tt.source, RemoteURL: "https://date.nager.at", Country: "US"}

			p, err := newHolidayProvider(hc, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("newHolidayProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewHolidayProvider_MissingTableFile(t *testing.T) {
	hc := config.HolidaysConfig{Source: "table", TableFile: "/nonexistent/holidays.txt"}
	if _, err := newHolidayProvider(hc, zap.NewNop()); err == nil {
		t.Error("expected error for missing table file")
	}
}

func TestParseMonth(t *testing.T) {
	got, err := parseMonth("2025-07")
	if err != nil || got != (view.Cursor{Year: 2025, Month: 6}) {
		t.Errorf("parseMonth() = %+v, %v", got, err)
	}
	if _, err := parseMonth("July"); err == nil {
		t.Error("parseMonth() accepted a bad month")
	}
}
