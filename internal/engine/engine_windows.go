//go:build windows

package engine

import "syscall"

const createNoWindow = 0x08000000

// Keeps the spawned engine from opening a console window.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNoWindow}
}
