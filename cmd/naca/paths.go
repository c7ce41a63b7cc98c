package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envRoot = "NACA456_ROOT"

// resolveRoot picks the engine workspace: the flag (or config) value, then
// $NACA456_ROOT, then the current directory.
func resolveRoot(flagValue string) (string, error) {
	root := strings.TrimSpace(flagValue)
	if root == "" {
		root = strings.TrimSpace(os.Getenv(envRoot))
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace root: %w", err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("workspace root is not a directory: %s", abs)
	}
	return abs, nil
}

// checkWatchDir rejects the engine's own deck directory: every run rewrites
// a file there, which would retrigger the watcher forever.
func checkWatchDir(dir, nmlDir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("watch: a directory argument is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	nml, err := filepath.Abs(nmlDir)
	if err != nil {
		return "", err
	}
	if filepath.Clean(abs) == filepath.Clean(nml) {
		return "", fmt.Errorf("watch: %s is the engine's deck directory; watch a separate input directory", abs)
	}
	return abs, nil
}
