package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WeekStartDay != time.Monday {
		t.Errorf("WeekStartDay = %v, want Monday", cfg.WeekStartDay)
	}
	if cfg.DayStartHour != 7 || cfg.DayEndHour != 20 {
		t.Errorf("working hours = %d-%d, want 7-20", cfg.DayStartHour, cfg.DayEndHour)
	}
	if cfg.StartupView != "month" {
		t.Errorf("StartupView = %q, want month", cfg.StartupView)
	}
	if !cfg.AutoRefresh {
		t.Error("AutoRefresh should default to true")
	}
	if cfg.RefreshRate != 30*time.Second {
		t.Errorf("RefreshRate = %v, want 30s", cfg.RefreshRate)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name:  "set store file",
			line:  `set store_file /tmp/planning.yaml`,
			check: func(c *Config) bool { return c.StoreFile == "/tmp/planning.yaml" },
		},
		{
			name:  "set quoted time format",
			line:  `set time_format "15h04"`,
			check: func(c *Config) bool { return c.TimeFormat == "15h04" },
		},
		{
			name:  "set ics sources list",
			line:  `set ics_sources /tmp/a.ics, /tmp/b.ics`,
			check: func(c *Config) bool { return len(c.ICSSources) == 2 && c.ICSSources[1] == "/tmp/b.ics" },
		},
		{
			name:  "set day start hour",
			line:  `set day_start_hour 8`,
			check: func(c *Config) bool { return c.DayStartHour == 8 },
		},
		{
			name:    "invalid day start hour",
			line:    `set day_start_hour 25`,
			wantErr: true,
		},
		{
			name:  "set startup view week",
			line:  `set startup_view week`,
			check: func(c *Config) bool { return c.StartupView == "week" },
		},
		{
			name:    "invalid startup view",
			line:    `set startup_view quarter`,
			wantErr: true,
		},
		{
			name:  "refresh rate as duration",
			line:  `set refresh_rate 2m`,
			check: func(c *Config) bool { return c.RefreshRate == 2*time.Minute },
		},
		{
			name:  "refresh rate as seconds",
			line:  `set refresh_rate 45`,
			check: func(c *Config) bool { return c.RefreshRate == 45*time.Second },
		},
		{
			name:  "color line",
			line:  `color in-progress magenta`,
			check: func(c *Config) bool { return c.Colors["in-progress"] == "magenta" },
		},
		{
			name:    "unknown variable",
			line:    `set frobnicate yes`,
			wantErr: true,
		},
		{
			name:    "garbage line",
			line:    `please schedule everything`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.parseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLine(%q) succeeded, want error", tt.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLine(%q): %v", tt.line, err)
			}
			if !tt.check(cfg) {
				t.Errorf("parseLine(%q) did not apply", tt.line)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelierrc")
	content := `# Atelier configuration
set startup_view week
set day_start_hour 8
set day_end_hour 18

color completed green
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.StartupView != "week" {
		t.Errorf("StartupView = %q, want week", cfg.StartupView)
	}
	if cfg.DayStartHour != 8 || cfg.DayEndHour != 18 {
		t.Errorf("working hours = %d-%d, want 8-18", cfg.DayStartHour, cfg.DayEndHour)
	}
}

func TestLoadFromFileBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelierrc")
	if err := os.WriteFile(path, []byte("set startup_view quarter\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(path); err == nil {
		t.Error("expected error for invalid config line")
	}
}

func TestWeekStartDayParsing(t *testing.T) {
	tests := []struct {
		value string
		want  time.Weekday
	}{
		{"monday", time.Monday},
		{"Mon", time.Monday},
		{"1", time.Monday},
		{"sunday", time.Sunday},
		{"0", time.Sunday},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		if err := cfg.setVariable("week_start_day", tt.value); err != nil {
			t.Errorf("week_start_day %q: %v", tt.value, err)
			continue
		}
		if cfg.WeekStartDay != tt.want {
			t.Errorf("week_start_day %q = %v, want %v", tt.value, cfg.WeekStartDay, tt.want)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.setVariable("week_start_day", "someday"); err == nil {
		t.Error("expected error for invalid week_start_day")
	}
}
