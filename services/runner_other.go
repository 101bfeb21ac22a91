//go:build !unix

package services

import "os/exec"

// setProcessGroup is a no-op where process groups are not available; the
// default Cancel kills the direct child only.
func setProcessGroup(cmd *exec.Cmd) {}
