package crypto

import "runtime"

// Wipe zeroes decoded secret material in place. It is best-effort only: the
// runtime may already hold copies elsewhere.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
