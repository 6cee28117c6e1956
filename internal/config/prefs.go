package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WidgetPrefs are the calendar widget's display preferences. They are
// not loaded as a module side effect; the UI receives them, and a pair
// of hooks, explicitly from its parent, so it stays testable without a
// real file behind it.
type WidgetPrefs struct {
	Granularity string `yaml:"granularity"` // "month" or "week"
}

// PrefsHooks carry the injected load/save behavior for widget prefs.
// Either hook may be nil, in which case the corresponding operation is
// silently skipped.
type PrefsHooks struct {
	Load func() (WidgetPrefs, bool)
	Save func(WidgetPrefs) error
}

// FilePrefsHooks returns hooks backed by a small YAML file.
func FilePrefsHooks(path string) PrefsHooks {
	return PrefsHooks{
		Load: func() (WidgetPrefs, bool) {
			data, err := os.ReadFile(path)
			if err != nil {
				return WidgetPrefs{}, false
			}
			var prefs WidgetPrefs
			if err := yaml.Unmarshal(data, &prefs); err != nil {
				return WidgetPrefs{}, false
			}
			return prefs, true
		},
		Save: func(prefs WidgetPrefs) error {
			data, err := yaml.Marshal(&prefs)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return err
			}
			return os.WriteFile(path, data, 0600)
		},
	}
}
