package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/config"
	"github.com/username/booking-calendar/internal/holiday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "booking-calendar",
		Short:         "Rental property booking calendar",
		Long:          "Month-view calendar of property bookings with checkin/checkout turnovers, US holidays and busy-season pricing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger("info")
				return err
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search config.yaml)")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(dayCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newStore builds the booking store from config
func newStore() *booking.Store {
	return booking.NewStore(cfg.Backend.BaseURL, cfg.Backend.GetTimeout(), logger)
}

// newHolidayProvider builds the configured holiday source.
// "primary+fallback" wraps both in a composite.
func newHolidayProvider(hc config.HolidaysConfig, log *zap.Logger) (holiday.Provider, error) {
	primaryName, fallbackName := hc.Sources()

	primary, err := holidaySource(primaryName, hc, log)
	if err != nil {
		return nil, err
	}
	if fallbackName == "" {
		log.Info("Using holiday source", zap.String("source", primary.Name()))
		return primary, nil
	}

	fallback, err := holidaySource(fallbackName, hc, log)
	if err != nil {
		return nil, err
	}
	composite := holiday.NewCompositeProvider(primary, fallback, log)
	log.Info("Using composite holiday source", zap.String("source", composite.Name()))
	return composite, nil
}

func holidaySource(name string, hc config.HolidaysConfig, log *zap.Logger) (holiday.Provider, error) {
	switch name {
	case config.SourceComputed:
		return holiday.NewComputedProvider(), nil
	case config.SourceTable:
		table := holiday.NewTableProvider(log)
		if hc.TableFile != "" {
			if err := table.LoadFile(hc.TableFile); err != nil {
				return nil, fmt.Errorf("failed to load holiday table: %w", err)
			}
		}
		return table, nil
	case config.SourceRemote:
		return holiday.NewRemoteProvider(hc.RemoteURL, hc.Country, hc.GetCacheTTL(), log), nil
	default:
		return nil, fmt.Errorf("unknown holiday source: %s", name)
	}
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "console"

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
