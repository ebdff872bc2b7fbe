package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme is the demo's color scheme, loadable from a YAML file so the
// palette can be tweaked without rebuilding.
type Theme struct {
	Keyword   string `yaml:"keyword"`
	Literal   string `yaml:"literal"`
	String    string `yaml:"string"`
	Blank     string `yaml:"blank"`
	Partial   string `yaml:"partial"`
	Cursor    string `yaml:"cursor"`
	Selection string `yaml:"selection"`
	Status    string `yaml:"status"`
}

func defaultTheme() Theme {
	return Theme{
		Keyword:   "12",
		Literal:   "10",
		String:    "11",
		Blank:     "8",
		Partial:   "13",
		Cursor:    "0",
		Selection: "7",
		Status:    "8",
	}
}

// loadTheme reads a theme file, falling back to the defaults when the path
// is empty or unreadable.
func loadTheme(path string) (Theme, error) {
	t := defaultTheme()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return defaultTheme(), err
	}
	return t, nil
}

type styleSet struct {
	keyword   lipgloss.Style
	literal   lipgloss.Style
	str       lipgloss.Style
	blank     lipgloss.Style
	partial   lipgloss.Style
	cursor    lipgloss.Style
	selection lipgloss.Style
	status    lipgloss.Style
}

func newStyles(t Theme) styleSet {
	return styleSet{
		keyword:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Keyword)).Bold(true),
		literal:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Literal)),
		str:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.String)),
		blank:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Blank)).Italic(true),
		partial:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Partial)).Underline(true),
		cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Cursor)).Reverse(true),
		selection: lipgloss.NewStyle().Background(lipgloss.Color(t.Selection)),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Status)),
	}
}
