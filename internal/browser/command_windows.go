//go:build windows

package browser

import (
	"os/exec"
	"syscall"
)

// newCommand hands cmd.exe a raw command line; exec would escape the empty
// start title into \"\"
func newCommand(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name) //nolint:gosec // G204: browser command comes from user settings
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: cmdLine(name, args)}
	return cmd
}
