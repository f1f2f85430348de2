// SPDX-License-Identifier: MPL-2.0

package config

import "sync/atomic"

// dirOverride replaces ConfigDir's platform lookup when set. os.UserHomeDir
// ignores HOME on some CI hosts, so tests point the directory here instead.
var dirOverride atomic.Pointer[string]

// SetConfigDirOverride makes ConfigDir return dir until Reset is called.
func SetConfigDirOverride(dir string) {
	dirOverride.Store(&dir)
}

// Reset drops the directory override. Tests register it with t.Cleanup.
func Reset() {
	dirOverride.Store(nil)
}

func configDirOverride() (string, bool) {
	if p := dirOverride.Load(); p != nil && *p != "" {
		return *p, true
	}
	return "", false
}
