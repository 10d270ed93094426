package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#01B4E4", "#04B575", "#FF5C5C", "#F5C518", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	rating lipgloss.Style
	help   lipgloss.Style
	fav    lipgloss.Style
}

func NewPalette(t, s, e, r, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		ok:     NewBold(s),
		err:    NewBold(e),
		rating: NewStyle(r),
		help:   NewEm(h),
		fav:    NewBold(r),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
