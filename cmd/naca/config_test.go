package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type setFlags map[string]bool

func (s setFlags) IsSet(name string) bool { return s[name] }

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `root: /srv/naca
executable: bin/naca456
timeout: 45s
jobs: 3
log_level: debug
server_address: 0.0.0.0:9000
rate_limit: 2.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Root != "/srv/naca" || cfg.Executable != "bin/naca456" {
		t.Fatalf("paths = %q %q", cfg.Root, cfg.Executable)
	}
	if cfg.Timeout == nil || *cfg.Timeout != 45*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if cfg.Jobs == nil || *cfg.Jobs != 3 {
		t.Fatalf("jobs = %v", cfg.Jobs)
	}
	if cfg.RateLimit == nil || *cfg.RateLimit != 2.5 {
		t.Fatalf("rate_limit = %v", cfg.RateLimit)
	}
	if cfg.LogFormat != "" {
		t.Fatalf("log_format = %q, want unset", cfg.LogFormat)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Timeout != nil || cfg.Root != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: [nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyServeConfig(t *testing.T) {
	t.Parallel()

	rate := 4.0
	cfg := Config{ServerAddress: ":9000", RateLimit: &rate}

	addr, limit := "127.0.0.1:8080", 0.0
	applyServeConfig(setFlags{}, cfg, &addr, &limit)
	if addr != ":9000" || limit != 4 {
		t.Fatalf("config not applied: addr=%q rate=%v", addr, limit)
	}

	addr, limit = "127.0.0.1:8080", 1.0
	applyServeConfig(setFlags{"addr": true, "rate-limit": true}, cfg, &addr, &limit)
	if addr != "127.0.0.1:8080" || limit != 1 {
		t.Fatalf("explicit flags overridden: addr=%q rate=%v", addr, limit)
	}
}

func TestApplyBatchConfig(t *testing.T) {
	t.Parallel()

	n := int64(6)
	cfg := Config{Jobs: &n}

	var jobs int64
	applyBatchConfig(setFlags{}, cfg, &jobs)
	if jobs != 6 {
		t.Fatalf("jobs = %d, want 6", jobs)
	}

	jobs = 2
	applyBatchConfig(setFlags{"jobs": true}, cfg, &jobs)
	if jobs != 2 {
		t.Fatalf("jobs = %d, want explicit 2", jobs)
	}
}

// Engine and logging config write package flag variables, so these tests
// run serially.
func TestApplyEngineConfig(t *testing.T) {
	saved := []any{rootDir, executable, timeout}
	t.Cleanup(func() {
		rootDir = saved[0].(string)
		executable = saved[1].(string)
		timeout = saved[2].(time.Duration)
	})

	d := time.Minute
	cfg := Config{Root: "/data", Executable: "/opt/naca456", Timeout: &d}

	rootDir, executable, timeout = "", "naca456", time.Second
	applyEngineConfig(setFlags{"executable": true}, cfg)
	if rootDir != "/data" {
		t.Fatalf("root = %q", rootDir)
	}
	if executable != "naca456" {
		t.Fatalf("explicit executable overridden: %q", executable)
	}
	if timeout != time.Minute {
		t.Fatalf("timeout = %v", timeout)
	}
}

func TestApplyLoggingConfig(t *testing.T) {
	savedLevel, savedFormat := logLevel, logFormat
	t.Cleanup(func() { logLevel, logFormat = savedLevel, savedFormat })

	logLevel, logFormat = "info", "pretty"
	applyLoggingConfig(setFlags{"log-level": true}, Config{LogLevel: "error", LogFormat: "json"})
	if logLevel != "info" {
		t.Fatalf("explicit log level overridden: %q", logLevel)
	}
	if logFormat != "json" {
		t.Fatalf("log format = %q", logFormat)
	}
}
