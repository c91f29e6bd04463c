package holiday

import (
	"go.uber.org/zap"
)

// CompositeProvider implements Provider with fallback strategy:
// the fallback answers whenever the primary has nothing for the year
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Name returns the provider identifier
func (cp *CompositeProvider) Name() string {
	return cp.primary.Name() + "+" + cp.fallback.Name()
}

// HolidaysForYear returns the holidays of the year
func (cp *CompositeProvider) HolidaysForYear(year int) []Holiday {
	holidays := cp.primary.HolidaysForYear(year)
	if len(holidays) > 0 {
		return holidays
	}

	cp.logger.Debug("Primary holiday source empty, falling back",
		zap.String("primary", cp.primary.Name()),
		zap.String("fallback", cp.fallback.Name()),
		zap.Int("year", year))

	return cp.fallback.HolidaysForYear(year)
}
