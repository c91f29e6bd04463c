//go:build !windows

package daemon

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// TrayApp is unavailable outside Windows; watch falls back to console mode
type TrayApp struct{}

// NewTrayApp always fails on this platform
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return nil, fmt.Errorf("system tray is not supported on %s", runtime.GOOS)
}

// Run does nothing on non-Windows platforms
func (t *TrayApp) Run() {}

// Stop does nothing on non-Windows platforms
func (t *TrayApp) Stop() {}

// ShowNotification does nothing on non-Windows platforms
func (t *TrayApp) ShowNotification(title, message string) {}
