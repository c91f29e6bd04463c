package holiday

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

type tableEntry struct {
	date string
	kind Kind
}

// builtinTable lists observed US federal holidays 2023-2030 (source: date.nager.at).
// Entries are keyed by the holiday's own year; an observed date may fall in the previous year.
var builtinTable = map[int][]tableEntry{
	2023: {
		{"2023-01-02", KindNewYearsDay}, {"2023-01-16", KindMLKDay}, {"2023-02-20", KindPresidentsDay},
		{"2023-05-29", KindMemorialDay}, {"2023-06-19", KindJuneteenth}, {"2023-07-04", KindIndependenceDay},
		{"2023-09-04", KindLaborDay}, {"2023-11-10", KindVeteransDay}, {"2023-11-23", KindThanksgiving},
		{"2023-12-25", KindChristmas},
	},
	2024: {
		{"2024-01-01", KindNewYearsDay}, {"2024-01-15", KindMLKDay}, {"2024-02-19", KindPresidentsDay},
		{"2024-05-27", KindMemorialDay}, {"2024-06-19", KindJuneteenth}, {"2024-07-04", KindIndependenceDay},
		{"2024-09-02", KindLaborDay}, {"2024-11-11", KindVeteransDay}, {"2024-11-28", KindThanksgiving},
		{"2024-12-25", KindChristmas},
	},
	2025: {
		{"2025-01-01", KindNewYearsDay}, {"2025-01-20", KindMLKDay}, {"2025-02-17", KindPresidentsDay},
		{"2025-05-26", KindMemorialDay}, {"2025-06-19", KindJuneteenth}, {"2025-07-04", KindIndependenceDay},
		{"2025-09-01", KindLaborDay}, {"2025-11-11", KindVeteransDay}, {"2025-11-27", KindThanksgiving},
		{"2025-12-25", KindChristmas},
	},
	2026: {
		{"2026-01-01", KindNewYearsDay}, {"2026-01-19", KindMLKDay}, {"2026-02-16", KindPresidentsDay},
		{"2026-05-25", KindMemorialDay}, {"2026-06-19", KindJuneteenth}, {"2026-07-03", KindIndependenceDay},
		{"2026-09-07", KindLaborDay}, {"2026-11-11", KindVeteransDay}, {"2026-11-26", KindThanksgiving},
		{"2026-12-25", KindChristmas},
	},
	2027: {
		{"2027-01-01", KindNewYearsDay}, {"2027-01-18", KindMLKDay}, {"2027-02-15", KindPresidentsDay},
		{"2027-05-31", KindMemorialDay}, {"2027-06-18", KindJuneteenth}, {"2027-07-05", KindIndependenceDay},
		{"2027-09-06", KindLaborDay}, {"2027-11-11", KindVeteransDay}, {"2027-11-25", KindThanksgiving},
		{"2027-12-24", KindChristmas},
	},
	2028: {
		{"2027-12-31", KindNewYearsDay}, {"2028-01-17", KindMLKDay}, {"2028-02-21", KindPresidentsDay},
		{"2028-05-29", KindMemorialDay}, {"2028-06-19", KindJuneteenth}, {"2028-07-04", KindIndependenceDay},
		{"2028-09-04", KindLaborDay}, {"2028-11-10", KindVeteransDay}, {"2028-11-23", KindThanksgiving},
		{"2028-12-25", KindChristmas},
	},
	2029: {
		{"2029-01-01", KindNewYearsDay}, {"2029-01-15", KindMLKDay}, {"2029-02-19", KindPresidentsDay},
		{"2029-05-28", KindMemorialDay}, {"2029-06-19", KindJuneteenth}, {"2029-07-04", KindIndependenceDay},
		{"2029-09-03", KindLaborDay}, {"2029-11-12", KindVeteransDay}, {"2029-11-22", KindThanksgiving},
		{"2029-12-25", KindChristmas},
	},
	2030: {
		{"2030-01-01", KindNewYearsDay}, {"2030-01-21", KindMLKDay}, {"2030-02-18", KindPresidentsDay},
		{"2030-05-27", KindMemorialDay}, {"2030-06-19", KindJuneteenth}, {"2030-07-04", KindIndependenceDay},
		{"2030-09-02", KindLaborDay}, {"2030-11-11", KindVeteransDay}, {"2030-11-28", KindThanksgiving},
		{"2030-12-25", KindChristmas},
	},
}

// TableProvider implements Provider using a static year -> holidays lookup
type TableProvider struct {
	logger *zap.Logger
	mu     sync.RWMutex
	data   map[int][]Holiday
}

// NewTableProvider creates a table provider seeded with the built-in table
func NewTableProvider(logger *zap.Logger) *TableProvider {
	tp := &TableProvider{
		logger: logger,
		data:   make(map[int][]Holiday, len(builtinTable)),
	}

	for year, entries := range builtinTable {
		holidays := make([]Holiday, 0, len(entries))
		for _, e := range entries {
			date, err := time.Parse(dateutil.DateLayout, e.date)
			if err != nil {
				panic(fmt.Sprintf("invalid built-in holiday date %q: %v", e.date, err))
			}
			holidays = append(holidays, New(e.kind, date))
		}
		tp.data[year] = holidays
	}

	return tp
}

// Name returns the provider identifier
func (tp *TableProvider) Name() string {
	return "table"
}

// HolidaysForYear returns the tabulated holidays, or nothing for an uncovered year
func (tp *TableProvider) HolidaysForYear(year int) []Holiday {
	tp.mu.RLock()
	defer tp.mu.RUnlock()

	holidays := tp.data[year]
	out := make([]Holiday, len(holidays))
	copy(out, holidays)
	return out
}

// Years returns the covered years in ascending order
func (tp *TableProvider) Years() []int {
	tp.mu.RLock()
	defer tp.mu.RUnlock()

	years := make([]int, 0, len(tp.data))
	for year := range tp.data {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// LoadFile merges holidays from a text file into the table.
// Every year present in the file replaces the built-in entries for that year.
//
// Format: YEAR YYYY-MM-DD kind [name]
// Example: 2031 2031-05-26 memorial-day Memorial Day
func (tp *TableProvider) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open holiday table: %w", err)
	}
	defer file.Close()

	loaded := make(map[int][]Holiday)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			tp.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		year, err := strconv.Atoi(parts[0])
		if err != nil {
			tp.logger.Warn("Failed to parse year", zap.String("year", parts[0]), zap.Error(err))
			continue
		}

		date, err := time.Parse(dateutil.DateLayout, parts[1])
		if err != nil {
			tp.logger.Warn("Failed to parse date", zap.String("date", parts[1]), zap.Error(err))
			continue
		}

		kind, ok := ParseKind(parts[2])
		if !ok {
			tp.logger.Warn("Unknown holiday kind", zap.String("kind", parts[2]))
			continue
		}

		h := New(kind, date)
		if len(parts) > 3 {
			h.Name = strings.Join(parts[3:], " ")
		}
		loaded[year] = append(loaded[year], h)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday table: %w", err)
	}

	tp.mu.Lock()
	for year, holidays := range loaded {
		sort.SliceStable(holidays, func(i, j int) bool {
			return holidays[i].Date.Before(holidays[j].Date)
		})
		tp.data[year] = holidays
	}
	tp.mu.Unlock()

	tp.logger.Info("Holiday table loaded",
		zap.String("file", path),
		zap.Int("years", len(loaded)))

	return nil
}
