package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sandsim/internal/dynamo"
)

// Theme is the colour scheme of the live view. Wall and Spring colour the
// canvas; the rest colour the side panel.
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Wall    dynamo.Color
	Spring  dynamo.Color
	Rigid   dynamo.Color
}

var Themes = []Theme{
	{
		Name:    "sunset",
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#5a3d5c"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
		Wall:    dynamo.RGB(0x8b, 0x6b, 0x8c),
		Spring:  dynamo.RGB(0xfe, 0xca, 0x57),
		Rigid:   dynamo.RGB(0xff, 0xf5, 0xf5),
	},
	{
		Name:    "ocean",
		Accent:  lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#24506a"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
		Wall:    dynamo.RGB(0x44, 0x88, 0xaa),
		Spring:  dynamo.RGB(0xff, 0xd7, 0x00),
		Rigid:   dynamo.RGB(0xe0, 0xf0, 0xff),
	},
	{
		Name:    "retro",
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
		Wall:    dynamo.RGB(0x00, 0x55, 0x00),
		Spring:  dynamo.RGB(0x88, 0xff, 0x88),
		Rigid:   dynamo.RGB(0x00, 0xcc, 0x00),
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
