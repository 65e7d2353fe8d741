//go:build windows

package runner

import "syscall"

var (
	kernel32                     = syscall.NewLazyDLL("kernel32.dll")
	procGenerateConsoleCtrlEvent = kernel32.NewProc("GenerateConsoleCtrlEvent")
)

// sendInterrupt raises CTRL_C_EVENT (0) for the current process group (0).
func sendInterrupt() {
	_, _, _ = procGenerateConsoleCtrlEvent.Call(0, 0)
}
