// Package ui holds the color themes shared by the CLI, the REPL and the
// usage text. Colors are ANSI escape sequences; the active theme is a
// process-wide setting guarded by a mutex.
package ui

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/term"
)

// Theme is a set of ANSI escape codes, one per role.
type Theme struct {
	Name string
	// Primary highlights results and flag names.
	Primary string
	// Secondary is used for labels and defaults.
	Secondary string
	Success   string
	Warning   string
	Error     string
	// Info marks negative values and engine names.
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape codes at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name.
func SetTheme(name string) error {
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	SetCurrentTheme(t)
	return nil
}

// ThemeNames lists the registered theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// InitTheme picks the startup theme. Colors are disabled by the -no-color
// flag, by a NO_COLOR environment variable (https://no-color.org/), or when
// standard output is not a terminal.
func InitTheme(noColor bool) {
	SetCurrentTheme(selectTheme(noColor, IsTerminal(os.Stdout)))
}

func selectTheme(noColor, tty bool) Theme {
	if noColor || !tty {
		return NoColorTheme
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return NoColorTheme
	}
	if name := os.Getenv("RATCALC_THEME"); name != "" {
		if t, ok := themes[name]; ok {
			return t
		}
	}
	return DarkTheme
}
