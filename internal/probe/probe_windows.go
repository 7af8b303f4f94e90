//go:build windows

package probe

import (
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProc  = user32.NewProc("GetWindowThreadProcessId")
	procGetLastInputInfo     = user32.NewProc("GetLastInputInfo")
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetTickCount64       = kernel32.NewProc("GetTickCount64")
)

// lastInputInfo mirrors the Win32 LASTINPUTINFO struct.
type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type windowsProbe struct{}

func newPlatformProbe() (Probe, error) {
	return windowsProbe{}, nil
}

// Foreground resolves the focused window to (process name, title).
// Any failure along the chain degrades to the unknown sentinels — the
// window may have closed between calls, or the process may deny access.
func (windowsProbe) Foreground() (string, string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ProcessIdle, "No active window", nil
	}

	var pid uint32
	procGetWindowThreadProc.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return ProcessUnknown, TitleUnknown, nil
	}

	name, err := processImageName(pid)
	if err != nil {
		return ProcessUnknown, TitleUnknown, nil
	}

	return name, windowTitle(hwnd), nil
}

// InputAge computes now minus the last input tick from GetLastInputInfo.
func (windowsProbe) InputAge() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	ret, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, err
	}
	now, _, _ := procGetTickCount64.Call()
	// dwTime is a 32-bit tick value; compare in 32-bit space so the
	// 49-day tick rollover cancels out.
	elapsed := uint32(now) - info.dwTime
	return time.Duration(elapsed) * time.Millisecond, nil
}

// processImageName returns the lower-cased executable base name for a pid.
func processImageName(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	full := syscall.UTF16ToString(buf[:size])
	return strings.ToLower(filepath.Base(full)), nil
}

func windowTitle(hwnd uintptr) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:n])
}
