// Package watch regenerates airfoils whenever a namelist deck in a watched
// directory is created or rewritten.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/logger"
	"github.com/samcharles93/naca456/internal/namelist"
)

const DefaultDebounce = 300 * time.Millisecond

// Ext is the extension of the files the watcher reacts to.
const Ext = ".nml"

type Generator interface {
	Generate(ctx context.Context, p namelist.Params) (*engine.Result, error)
}

type Config struct {
	Dir      string
	Debounce time.Duration
	// OnResult, when set, is called after every attempt.
	OnResult func(path string, res *engine.Result, err error)
}

type Watcher struct {
	cfg Config
	gen Generator
	log logger.Logger
}

func New(cfg Config, gen Generator, log logger.Logger) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("watch: directory is required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", cfg.Dir)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Watcher{cfg: cfg, gen: gen, log: logger.Component(log, "watch")}, nil
}

// Run blocks until ctx is canceled. Editors tend to write a file in several
// steps, so a deck is processed once no event touched it for Debounce.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	w.log.Info("watching", "dir", w.cfg.Dir, "debounce", w.cfg.Debounce)

	pending := make(map[string]time.Time)
	tick := time.NewTicker(w.cfg.Debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), Ext) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "err", err)
		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < w.cfg.Debounce {
					continue
				}
				delete(pending, path)
				w.Process(ctx, path)
			}
		}
	}
}

// Process decodes one deck and generates it. Failures are logged and
// reported through OnResult.
func (w *Watcher) Process(ctx context.Context, path string) {
	res, err := w.generate(ctx, path)
	if err != nil {
		w.log.Error("deck failed", "file", filepath.Base(path), "err", err)
	} else {
		w.log.Info("deck generated", "file", filepath.Base(path), "name", res.Name, "points", res.Airfoil.Len())
	}
	if w.cfg.OnResult != nil {
		w.cfg.OnResult(path, res, err)
	}
}

func (w *Watcher) generate(ctx context.Context, path string) (*engine.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := namelist.Decode(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	return w.gen.Generate(ctx, p)
}
