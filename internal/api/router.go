package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires the calendar routes with CORS and panic recovery
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/api/calendar/{year:[0-9]{4}}/{month:[0-9]{1,2}}", h.Month).Methods("GET")
	r.HandleFunc("/api/calendar/day/{date}", h.Day).Methods("GET")
	r.HandleFunc("/api/calendar/day/{date}/select", h.Select).Methods("GET")
	r.HandleFunc("/api/holidays/{year:[0-9]{4}}", h.Holidays).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
		handlers.PrintRecoveryStack(false),
	)

	return recovery(cors(r))
}

// recoveryLogger adapts zap to gorilla's RecoveryHandlerLogger
type recoveryLogger struct {
	logger *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic in handler", zap.Any("panic", v))
}
