package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("LOCBOT_RUNTIME_PATH"))
}

// resolveRuntimePath defaults to .locbot and anchors relative paths at the
// user's home directory, so every consumer resolves to the same location.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".locbot"
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
