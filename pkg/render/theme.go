package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles and icons of terminal output.
type Theme struct {
	Name   string
	Title  lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Info   lipgloss.Style
	Muted  lipgloss.Style
	Gutter lipgloss.Style // line numbers in context listings
	Hit    lipgloss.Style // the matched line itself
	Icons  Icons
}

// Icons are the glyphs placed before each check.
type Icons struct {
	Pass   string
	Fail   string
	Info   string
	Arrow  string
	Bullet string
}

// DefaultTheme is the colored theme.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Hit:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Icons:  Icons{Pass: "✓", Fail: "✗", Info: "●", Arrow: "→", Bullet: "·"},
	}
}

// OrcaTheme is a muted palette.
func OrcaTheme() Theme {
	return Theme{
		Name:   "orca",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		Fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Hit:    lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
		Icons:  Icons{Pass: "✓", Fail: "✗", Info: "·", Arrow: ">", Bullet: "·"},
	}
}

// MonoTheme uses no color and ASCII icons.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:   "mono",
		Title:  lipgloss.NewStyle().Bold(true),
		Pass:   plain,
		Fail:   plain,
		Info:   plain,
		Muted:  plain,
		Gutter: plain,
		Hit:    plain,
		Icons:  Icons{Pass: "+", Fail: "x", Info: "*", Arrow: ">", Bullet: "-"},
	}
}

// ThemeNames lists the accepted --theme values.
var ThemeNames = []string{"default", "orca", "mono"}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
