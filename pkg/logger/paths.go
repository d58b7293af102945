/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"
)

const appID = "userdir"

// PlatformLogPaths returns candidate log paths in order of priority for the platform.
// USERDIR_LOG_FILE always wins when set.
func PlatformLogPaths() []string {
	var paths []string
	if p := os.Getenv("USERDIR_LOG_FILE"); p != "" {
		paths = append(paths, p)
	}

	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			paths = append(paths, filepath.Join(local, appID, appID+".log"))
		}
	default:
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			paths = append(paths, filepath.Join(state, appID, appID+".log"))
		} else if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".local", "state", appID, appID+".log"))
		}
	}

	return append(paths, filepath.Join(os.TempDir(), appID, appID+".log"))
}
