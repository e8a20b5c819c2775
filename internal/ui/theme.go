package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Star         lipgloss.Style
	Good         lipgloss.Style
	Bad          lipgloss.Style
	Muted        lipgloss.Style
	CardDown     lipgloss.Style
	CardUp       lipgloss.Style
	CardMatched  lipgloss.Style
	CardWrong    lipgloss.Style
	CardCursor   lipgloss.Style
	Locked       lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("light")
}

func ThemeForVariant(variant string) Theme {
	if variant == "dark" {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	sky := lipgloss.Color("#87CEEB")
	sun := lipgloss.Color("#FFD93D")
	grass := lipgloss.Color("#6BCB77")
	berry := lipgloss.Color("#FF6B6B")
	cloud := lipgloss.Color("#FDFDFD")
	ink := lipgloss.Color("#2D3748")
	lilac := lipgloss.Color("#B39DDB")
	border := lipgloss.Color("#4D96FF")

	cardBase := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Bold(true)

	return Theme{
		Header: lipgloss.NewStyle().
			Background(sky).
			Foreground(ink).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(cloud).
			Foreground(ink).
			Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(border).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(border),
		PanelBody:   lipgloss.NewStyle().Foreground(ink),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sun).
			Foreground(ink).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(berry).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(border).Bold(true),
		Star:         lipgloss.NewStyle().Foreground(sun).Bold(true),
		Good:         lipgloss.NewStyle().Foreground(grass).Bold(true),
		Bad:          lipgloss.NewStyle().Foreground(berry).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		CardDown:     cardBase.BorderForeground(border).Foreground(lilac),
		CardUp:       cardBase.BorderForeground(sun).Foreground(ink),
		CardMatched:  cardBase.BorderForeground(grass).Foreground(grass),
		CardWrong:    cardBase.BorderForeground(berry).Foreground(berry),
		CardCursor:   cardBase.BorderStyle(lipgloss.ThickBorder()).BorderForeground(berry),
		Locked:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
	}
}

func darkTheme() Theme {
	midnight := lipgloss.Color("#1A202C")
	dusk := lipgloss.Color("#2D3748")
	moon := lipgloss.Color("#F6E05E")
	mint := lipgloss.Color("#68D391")
	coral := lipgloss.Color("#FC8181")
	mist := lipgloss.Color("#E2E8F0")
	violet := lipgloss.Color("#B794F4")
	frost := lipgloss.Color("#63B3ED")

	cardBase := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Bold(true)

	return Theme{
		Header:      lipgloss.NewStyle().Background(midnight).Foreground(mist).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(dusk).Foreground(mist).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(frost).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(dusk),
		PanelBody:   lipgloss.NewStyle().Foreground(mist),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(moon).
			Background(midnight).
			Foreground(mist).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(moon).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(frost).Bold(true),
		Star:         lipgloss.NewStyle().Foreground(moon).Bold(true),
		Good:         lipgloss.NewStyle().Foreground(mint).Bold(true),
		Bad:          lipgloss.NewStyle().Foreground(coral).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#718096")),
		CardDown:     cardBase.BorderForeground(frost).Foreground(violet),
		CardUp:       cardBase.BorderForeground(moon).Foreground(mist),
		CardMatched:  cardBase.BorderForeground(mint).Foreground(mint),
		CardWrong:    cardBase.BorderForeground(coral).Foreground(coral),
		CardCursor:   cardBase.BorderStyle(lipgloss.ThickBorder()).BorderForeground(coral),
		Locked:       lipgloss.NewStyle().Foreground(lipgloss.Color("#718096")),
	}
}
