package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root markers. A directory holding either one is a catalog root.
const (
	MarkerDir  = ".enumtext"
	MarkerFile = "enumtext.yaml"
)

// FindRoot looks upwards from startDir for a catalog root marker and returns
// the absolute path of the directory holding it.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, MarkerDir) || hasFile(dir, MarkerFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("catalog root not found above %s", abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
