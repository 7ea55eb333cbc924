//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

/* Consoles that cannot be coaxed into accepting VT sequences get the no-codes default instead of
raw escapes. This must run before the flag defaults in init1.go are read. */
func init() {
	for _, fd := range [2]uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		handle, mode := Handle(fd), uint32(0)
		if GetConsoleMode(handle, &mode) != nil {
			pNoCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 &&
			SetConsoleMode(handle, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
			pNoCodesDefault = true
			break
		}
	}
	pNoCodes = pNoCodesDefault
}
