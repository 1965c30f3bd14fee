package cli

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors used by all commands.
type Theme struct {
	Header  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Primary lipgloss.Color
	Second  lipgloss.Color
}

// DefaultTheme works on dark terminals.
var DefaultTheme = Theme{
	Header:  lipgloss.Color("#5FAFD7"), // light blue
	Label:   lipgloss.Color("#AFAFAF"), // gray
	Value:   lipgloss.Color("#FFFFFF"), // white
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Primary: lipgloss.Color("#FF8700"), // orange, star 1
	Second:  lipgloss.Color("#00AFFF"), // blue, star 2
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Header).Bold(true)
}

func (t Theme) labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Label)
}

func (t Theme) valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Value)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) primaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary)
}

func (t Theme) secondStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Second)
}
