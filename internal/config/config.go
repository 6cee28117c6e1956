package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Data settings
	StoreFile  string
	ICSSources []string

	// Display settings
	WeekStartDay time.Weekday
	TimeFormat   string
	DateFormat   string
	DayStartHour int
	DayEndHour   int
	StartupView  string

	// UI settings
	Colors map[string]string

	// Behavior settings
	AutoRefresh bool
	RefreshRate time.Duration

	// Logging
	LogFile  string
	LogLevel string
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		StoreFile: filepath.Join(home, ".config", "atelier", "interventions.yaml"),

		WeekStartDay: time.Monday,
		TimeFormat:   "15:04",
		DateFormat:   "Jan 2, 2006",
		DayStartHour: 7,
		DayEndHour:   20,
		StartupView:  "month",

		Colors: map[string]string{
			"normal":      "default",
			"today":       "yellow",
			"selected":    "reverse",
			"planned":     "blue",
			"in-progress": "yellow",
			"completed":   "green",
			"cancelled":   "red",
		},

		AutoRefresh: true,
		RefreshRate: 30 * time.Second,

		LogFile:  filepath.Join(home, ".config", "atelier", "atelier.log"),
		LogLevel: "info",
	}
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPaths := []string{
		os.Getenv("ATELIER_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "atelier", "atelierrc"),
		filepath.Join(os.Getenv("HOME"), ".config", "atelier", "atelierrc"),
		filepath.Join(os.Getenv("HOME"), ".atelierrc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	// Handle set commands: set variable value
	setRe := regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// Handle color commands: color element color_spec
	colorRe := regexp.MustCompile(`^color\s+([\w-]+)\s+(.+)$`)
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = matches[2]
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "store_file":
		c.StoreFile = expandHome(value)

	case "ics_source", "ics_sources":
		sources := strings.Split(value, ",")
		for i := range sources {
			sources[i] = expandHome(strings.TrimSpace(sources[i]))
		}
		c.ICSSources = sources

	case "week_start_day":
		switch strings.ToLower(value) {
		case "sunday", "sun", "0":
			c.WeekStartDay = time.Sunday
		case "monday", "mon", "1":
			c.WeekStartDay = time.Monday
		default:
			return fmt.Errorf("invalid week_start_day: %s", value)
		}

	case "time_format":
		c.TimeFormat = value

	case "date_format":
		c.DateFormat = value

	case "day_start_hour":
		hour, err := strconv.Atoi(value)
		if err != nil || hour < 0 || hour > 23 {
			return fmt.Errorf("invalid day_start_hour: %s", value)
		}
		c.DayStartHour = hour

	case "day_end_hour":
		hour, err := strconv.Atoi(value)
		if err != nil || hour < 0 || hour > 23 {
			return fmt.Errorf("invalid day_end_hour: %s", value)
		}
		c.DayEndHour = hour

	case "startup_view":
		if value != "month" && value != "week" {
			return fmt.Errorf("invalid startup_view: %s", value)
		}
		c.StartupView = value

	case "auto_refresh":
		c.AutoRefresh = strings.ToLower(value) == "true" || value == "1"

	case "refresh_rate":
		rate, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as seconds
			if seconds, err2 := strconv.Atoi(value); err2 == nil {
				rate = time.Duration(seconds) * time.Second
			} else {
				return fmt.Errorf("invalid refresh_rate: %s", value)
			}
		}
		c.RefreshRate = rate

	case "log_file":
		c.LogFile = expandHome(value)

	case "log_level":
		c.LogLevel = value

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
