package config

import "sync"

// ResetForTest clears the cached Load state so tests can load different
// environments within the same process.
func ResetForTest() {
	loaded = nil
	loadErr = nil
	loadOnce = sync.Once{}
}
