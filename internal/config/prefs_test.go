package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilePrefsHooksRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "widget.yaml")
	hooks := FilePrefsHooks(path)

	// Nothing saved yet.
	if _, ok := hooks.Load(); ok {
		t.Error("Load reported prefs before any save")
	}

	if err := hooks.Save(WidgetPrefs{Granularity: "week"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	prefs, ok := hooks.Load()
	if !ok {
		t.Fatal("Load failed after save")
	}
	if prefs.Granularity != "week" {
		t.Errorf("Granularity = %q, want week", prefs.Granularity)
	}
}

func TestFilePrefsHooksCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.yaml")
	hooks := FilePrefsHooks(path)

	if err := os.WriteFile(path, []byte("granularity: [not, a, string"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := hooks.Load(); ok {
		t.Error("Load accepted corrupt prefs file")
	}
}
