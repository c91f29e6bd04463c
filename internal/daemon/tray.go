//go:build windows

package daemon

import (
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	mbOK              = 0x00000000
	mbIconInformation = 0x00000040
)

// TrayApp shows the watch daemon in the Windows notification area
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	quitOnce sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(calendarIcon())
	systray.SetTitle("BC")
	systray.SetTooltip("Booking Calendar")

	mRefresh := systray.AddMenuItem("Refresh Now", "Fetch bookings immediately")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show last refresh")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		if err := t.daemon.run(); err != nil {
			t.logger.Error("Daemon loop failed", zap.Error(err))
		}
		systray.Quit()
	}()

	go func() {
		for {
			select {
			case <-mRefresh.ClickedCh:
				t.logger.Info("Refresh Now clicked from tray")
				go t.daemon.RefreshNow()
			case <-mStatus.ClickedCh:
				status := t.daemon.Status()
				systray.SetTooltip(status)
				showMessageBox("Booking Calendar", status)
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				return
			case <-t.quit:
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// ShowNotification logs a notification; fyne.io/systray has no balloon support
func (t *TrayApp) ShowNotification(title, message string) {
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(mbOK|mbIconInformation),
	)
}
