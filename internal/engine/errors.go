package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound is returned by New when the engine binary is missing.
	ErrExecutableNotFound = errors.New("naca456 executable not found")
	// ErrEngine is matched by every failed engine run.
	ErrEngine = errors.New("naca456 run failed")
	// ErrTimeout is matched when a run exceeded its deadline.
	ErrTimeout = errors.New("naca456 run timed out")
	// ErrNoOutput is returned when the engine exited without writing naca.out.
	ErrNoOutput = errors.New("naca456 produced no naca.out")
)

// RunError carries the engine's exit status and diagnostics.
type RunError struct {
	Stem     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("naca456 %s: %v", e.Stem, e.Err)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

func (e *RunError) Unwrap() []error {
	return []error{ErrEngine, e.Err}
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
