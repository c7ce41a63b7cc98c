package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/samcharles93/naca456/internal/logger"
	"github.com/samcharles93/naca456/internal/namelist"
	"github.com/samcharles93/naca456/internal/ordinates"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeEngine installs a shell script posing as naca456 under a fresh root.
func fakeEngine(t *testing.T, body string, cfg Config) *Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a POSIX shell script")
	}
	root := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(root, DefaultExecutable), []byte(script), 0o755); err != nil {
		t.Fatalf("write fake engine: %v", err)
	}
	cfg.Root = root
	e, err := New(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "ordinates", "testdata", name))
	if err != nil {
		t.Fatalf("fixture path: %v", err)
	}
	return path
}

// listingEngine copies the cambered listing for decks with camber '2' and
// the symmetric one otherwise.
func listingEngine(t *testing.T) *Engine {
	t.Helper()
	body := `read deck
test -f "$deck" || { echo "missing deck $deck" >&2; exit 2; }
if grep -q "camber = '2'" "$deck"; then
  cp '` + fixture(t, "cambered.out") + `' naca.out
else
  cp '` + fixture(t, "symmetric.out") + `' naca.out
fi
echo "0 0" > naca.gnu`
	return fakeEngine(t, body, Config{})
}

func twelvePercent() namelist.Params {
	p := namelist.Defaults()
	p.TOC = 0.12
	return p
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func TestGenerateSymmetric(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	res, err := e.Generate(context.Background(), twelvePercent())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Name != "NACA 0012" || res.Stem != "naca0012" {
		t.Fatalf("unexpected name/stem %q/%q", res.Name, res.Stem)
	}
	if res.Airfoil.Cambered || res.Airfoil.Len() != 5 || res.Airfoil.Name != "NACA 0012" {
		t.Fatalf("unexpected airfoil: %+v", res.Airfoil)
	}

	l := e.Layout()
	want := Files{
		Namelist: filepath.Join(l.NML(), "naca0012.nml"),
		Out:      filepath.Join(l.OUT(), "naca0012.out"),
		GNU:      filepath.Join(l.GNU(), "naca0012.gnu"),
		XFOIL:    filepath.Join(l.XFOIL(), "naca0012.dat"),
	}
	if res.Files != want {
		t.Fatalf("files: got %+v want %+v", res.Files, want)
	}
	for _, path := range []string{want.Namelist, want.Out, want.GNU, want.XFOIL} {
		assertExists(t, path)
	}

	deck, err := os.ReadFile(want.Namelist)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(deck), "name = 'NACA 0012',") {
		t.Fatalf("deck is missing the resolved name:\n%s", deck)
	}

	entries, err := os.ReadDir(l.Root)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".run-") {
			t.Fatalf("scratch dir %s was not removed", entry.Name())
		}
	}
}

func TestGenerateCambered(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	p := twelvePercent()
	p.Camber = namelist.CamberTwoDigit
	p.CMax = 0.02
	res, err := e.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Name != "NACA 2412" || !res.Airfoil.Cambered || res.Airfoil.Len() != 4 {
		t.Fatalf("unexpected result: %s cambered=%v n=%d", res.Name, res.Airfoil.Cambered, res.Airfoil.Len())
	}
}

func TestGenerateKeepsName(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	p := twelvePercent()
	p.Name = "Wing Root #1"
	res, err := e.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Stem != "wingroot1" {
		t.Fatalf("stem = %q", res.Stem)
	}
	assertExists(t, filepath.Join(e.Layout().XFOIL(), "wingroot1.dat"))
}

func TestGenerateReportsIgnored(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	p := twelvePercent()
	p.CMax = 0.05
	res, err := e.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Ignored) != 1 || res.Ignored[0] != "cmax" {
		t.Fatalf("ignored = %v", res.Ignored)
	}
}

func TestGenerateInvalid(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	p := namelist.Defaults()
	p.TOC = 0
	_, err := e.Generate(context.Background(), p)
	if !errors.Is(err, namelist.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	entries, _ := os.ReadDir(e.Layout().NML())
	if len(entries) != 0 {
		t.Fatalf("invalid params must not write a deck, found %d files", len(entries))
	}
}

func TestGenerateEngineFailure(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, `read deck
echo "reading $deck" >&2
echo "NAMELIST READ ERROR" >&2
exit 3`, Config{})

	_, err := e.Generate(context.Background(), twelvePercent())
	if !errors.Is(err, ErrEngine) {
		t.Fatalf("expected ErrEngine, got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if runErr.ExitCode != 3 || runErr.Stem != "naca0012" {
		t.Fatalf("unexpected run error: %+v", runErr)
	}
	if !strings.HasSuffix(err.Error(), ": NAMELIST READ ERROR") {
		t.Fatalf("message should end with the last stderr line: %q", err.Error())
	}
}

func TestGenerateNoOutput(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, "read deck\nexit 0", Config{})

	_, err := e.Generate(context.Background(), twelvePercent())
	if !errors.Is(err, ErrNoOutput) || !errors.Is(err, ErrEngine) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
}

func TestGenerateUnreadableListing(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, "read deck\necho 'NACA456 listing without a table' > naca.out", Config{})

	_, err := e.Generate(context.Background(), twelvePercent())
	if !errors.Is(err, ErrEngine) || !errors.Is(err, ordinates.ErrNoTable) {
		t.Fatalf("expected ErrEngine wrapping ErrNoTable, got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Stem != "naca0012" {
		t.Fatalf("expected *RunError for naca0012, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, "sleep 30", Config{Timeout: 200 * time.Millisecond, KillGrace: 100 * time.Millisecond})

	start := time.Now()
	_, err := e.Generate(context.Background(), twelvePercent())
	if !errors.Is(err, ErrTimeout) || !errors.Is(err, ErrEngine) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("timeout took %s", elapsed)
	}
}

func TestGenerateCanceled(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, "sleep 30", Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Generate(ctx, twelvePercent())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("cancellation must not be reported as a timeout")
	}
}

func TestGenerateConcurrentSameStem(t *testing.T) {
	t.Parallel()
	e := listingEngine(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = e.Generate(context.Background(), twelvePercent())
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(e.locks.held) != 0 {
		t.Fatalf("stem locks leaked: %v", e.locks.held)
	}
}

func TestNewMissingExecutable(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Root: t.TempDir()}, nil)
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	e := fakeEngine(t, "exit 0", Config{})
	cfg := e.Config()
	if cfg.Timeout != DefaultTimeout || cfg.KillGrace != DefaultKillGrace || cfg.Executable != DefaultExecutable {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	for _, dir := range []string{e.Layout().NML(), e.Layout().OUT(), e.Layout().XFOIL(), e.Layout().GNU(), e.Layout().DBG()} {
		assertExists(t, dir)
	}
}
