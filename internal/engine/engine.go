// Package engine drives the naca456 executable: it writes the input deck,
// runs the program in an isolated working directory and collects what it
// leaves behind.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/samcharles93/naca456/internal/designation"
	"github.com/samcharles93/naca456/internal/logger"
	"github.com/samcharles93/naca456/internal/namelist"
	"github.com/samcharles93/naca456/internal/ordinates"
)

const (
	DefaultExecutable = "naca456"
	DefaultTimeout    = 20 * time.Second
	DefaultKillGrace  = 2 * time.Second
)

type Config struct {
	// Root holds the executable and the output tree.
	Root string
	// Executable is resolved against Root unless absolute.
	Executable string
	Timeout    time.Duration
	KillGrace  time.Duration
}

type Engine struct {
	cfg    Config
	exe    string
	layout Layout
	log    logger.Logger
	locks  stemLocks
}

// Result describes one successful run.
type Result struct {
	Name    string             `json:"name"`
	Stem    string             `json:"stem"`
	Params  namelist.Params    `json:"params"`
	Airfoil *ordinates.Airfoil `json:"airfoil"`
	Files   Files              `json:"files"`
	Elapsed time.Duration      `json:"elapsed"`
	// Ignored lists keys that were set but have no effect for the chosen families.
	Ignored []string `json:"ignored,omitempty"`
}

func New(cfg Config, log logger.Logger) (*Engine, error) {
	if cfg.Executable == "" {
		cfg.Executable = DefaultExecutable
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.KillGrace <= 0 {
		cfg.KillGrace = DefaultKillGrace
	}
	if log == nil {
		log = logger.Discard()
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	cfg.Root = root

	exe := cfg.Executable
	if !filepath.IsAbs(exe) {
		exe = filepath.Join(root, exe)
	}
	info, err := os.Stat(exe)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrExecutableNotFound, exe)
	}

	layout := Layout{Root: root}
	if err := layout.Ensure(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		exe:    exe,
		layout: layout,
		log:    logger.Component(log, "engine"),
	}, nil
}

func (e *Engine) Layout() Layout { return e.layout }

func (e *Engine) Config() Config { return e.cfg }

// Prepare normalizes p, fills a missing name and validates the result.
func Prepare(p namelist.Params) (namelist.Params, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return p, err
	}
	return designation.Resolve(p)
}

// Generate runs naca456 for p and returns the parsed ordinates.
// Concurrent runs with the same stem are serialized.
func (e *Engine) Generate(ctx context.Context, p namelist.Params) (*Result, error) {
	ignored := p.Normalize().Ignored()
	p, err := Prepare(p)
	if err != nil {
		return nil, err
	}
	stem := designation.Stem(p.Name)
	if len(ignored) > 0 {
		e.log.Warn("keys have no effect for this camber/profile", "stem", stem, "keys", strings.Join(ignored, ","))
	}

	unlock := e.locks.lock(stem)
	defer unlock()

	start := time.Now()
	files := Files{Namelist: filepath.Join(e.layout.NML(), stem+".nml")}
	if err := renameio.WriteFile(files.Namelist, []byte(namelist.Marshal(p)), 0o644); err != nil {
		return nil, fmt.Errorf("write namelist: %w", err)
	}

	scratch, err := os.MkdirTemp(e.layout.Root, ".run-"+stem+"-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := e.run(ctx, stem, scratch, files.Namelist); err != nil {
		return nil, err
	}

	collected, err := e.layout.collect(scratch, stem)
	if err != nil {
		return nil, &RunError{Stem: stem, Err: err}
	}
	collected.Namelist = files.Namelist
	files = collected

	airfoil, err := parseListing(files.Out)
	if err != nil {
		return nil, &RunError{Stem: stem, Err: fmt.Errorf("%s: %w", files.Out, err)}
	}
	airfoil.Name = p.Name

	files.XFOIL = filepath.Join(e.layout.XFOIL(), stem+".dat")
	if err := ordinates.WriteXFOILFile(files.XFOIL, airfoil); err != nil {
		return nil, fmt.Errorf("export xfoil: %w", err)
	}

	res := &Result{
		Name:    p.Name,
		Stem:    stem,
		Params:  p,
		Airfoil: airfoil,
		Files:   files,
		Elapsed: time.Since(start),
		Ignored: ignored,
	}
	e.log.Info("generated", "name", res.Name, "points", airfoil.Len(), "cambered", airfoil.Cambered, "elapsed", res.Elapsed)
	return res, nil
}

func (e *Engine) run(ctx context.Context, stem, dir, deck string) error {
	runCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, e.exe)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(deck + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * e.cfg.KillGrace
	setProcessGroup(cmd, e.cfg.KillGrace)

	e.log.Debug("starting", "stem", stem, "exe", e.exe, "dir", dir)
	err := cmd.Run()
	if stdout.Len() > 0 {
		e.log.Debug("engine output", "stem", stem, "bytes", stdout.Len())
	}
	if err == nil {
		return nil
	}

	runErr := &RunError{Stem: stem, Stderr: stderr.String(), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		runErr.ExitCode = exitErr.ExitCode()
	}
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		runErr.Err = fmt.Errorf("%w after %s", ErrTimeout, e.cfg.Timeout)
	case ctx.Err() != nil:
		runErr.Err = ctx.Err()
	}
	e.log.Error("run failed", "stem", stem, "err", runErr)
	return runErr
}

func parseListing(path string) (*ordinates.Airfoil, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ordinates.Parse(f)
}

// stemLocks hands out one mutex per stem, dropped when unused.
type stemLocks struct {
	mu   sync.Mutex
	held map[string]*stemLock
}

type stemLock struct {
	mu   sync.Mutex
	refs int
}

func (s *stemLocks) lock(stem string) func() {
	s.mu.Lock()
	if s.held == nil {
		s.held = make(map[string]*stemLock)
	}
	l, ok := s.held[stem]
	if !ok {
		l = &stemLock{}
		s.held[stem] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.held, stem)
		}
		s.mu.Unlock()
	}
}
