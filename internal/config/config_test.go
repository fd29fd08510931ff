package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	// Only the required field; everything else should come from defaults.
	path := writeConfig(t, `
collector:
  command: /usr/local/bin/collect_region.sh
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantRegions := []string{"pays-de-la-loire", "bretagne", "normandie", "nouvelle-aquitaine"}
	if len(cfg.Regions) != len(wantRegions) {
		t.Fatalf("Regions = %v, want %v", cfg.Regions, wantRegions)
	}
	for i, r := range wantRegions {
		if cfg.Regions[i] != r {
			t.Errorf("Regions[%d] = %q, want %q", i, cfg.Regions[i], r)
		}
	}
	if cfg.PacingInterval() != 30*time.Second {
		t.Errorf("PacingInterval() = %v, want 30s", cfg.PacingInterval())
	}
	if cfg.CollectorTimeout() != 45*time.Minute {
		t.Errorf("CollectorTimeout() = %v, want 45m", cfg.CollectorTimeout())
	}
	if cfg.Log.File != "regionharvest.log" {
		t.Errorf("Log.File = %q, want regionharvest.log", cfg.Log.File)
	}
	if !cfg.Log.Development {
		t.Error("Log.Development = false, want true by default")
	}
	if cfg.Metrics.Textfile != "" {
		t.Errorf("Metrics.Textfile = %q, want empty", cfg.Metrics.Textfile)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
regions: [r1, r2]
collector:
  command: scripts/collect.sh
  timeout_minutes: 10
pacing:
  interval_seconds: 5
log:
  file: /var/log/harvest.log
  development: false
metrics:
  textfile: /var/lib/node_exporter/harvest.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Regions; len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("Regions = %v, want [r1 r2]", got)
	}
	if cfg.Collector.Command != "scripts/collect.sh" {
		t.Errorf("Collector.Command = %q", cfg.Collector.Command)
	}
	if cfg.CollectorTimeout() != 10*time.Minute {
		t.Errorf("CollectorTimeout() = %v, want 10m", cfg.CollectorTimeout())
	}
	if cfg.PacingInterval() != 5*time.Second {
		t.Errorf("PacingInterval() = %v, want 5s", cfg.PacingInterval())
	}
	if cfg.Log.Development {
		t.Error("Log.Development = true, want false")
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/harvest.prom" {
		t.Errorf("Metrics.Textfile = %q", cfg.Metrics.Textfile)
	}
}

func TestLoadValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "missing command",
			yaml: "regions: [r1]\n",
		},
		{
			name: "empty regions",
			yaml: `
regions: []
collector:
  command: c.sh
`,
		},
		{
			name: "duplicate region",
			yaml: `
regions: [r1, r1]
collector:
  command: c.sh
`,
		},
		{
			name: "blank region name",
			yaml: `
regions: ["", r1]
collector:
  command: c.sh
`,
		},
		{
			name: "negative interval",
			yaml: `
regions: [r1]
collector:
  command: c.sh
pacing:
  interval_seconds: -1
`,
		},
		{
			name: "negative timeout",
			yaml: `
regions: [r1]
collector:
  command: c.sh
  timeout_minutes: -5
`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tc.yaml)
			if _, err := Load(path); err == nil {
				t.Fatal("Load() error = nil, want validation failure")
			}
		})
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() error = nil, want read failure")
	}
}
