package tui

import (
	list "github.com/charmbracelet/bubbles/list"

	"mandelzoom/internal/fractal"
)

type landmarkItem struct {
	lm fractal.Landmark
}

func (i landmarkItem) Title() string       { return i.lm.Name }
func (i landmarkItem) Description() string { return i.lm.Description }
func (i landmarkItem) FilterValue() string { return i.lm.Name }

func newLandmarkList() list.Model {
	items := make([]list.Item, 0, len(fractal.Landmarks))
	for _, lm := range fractal.Landmarks {
		items = append(items, landmarkItem{lm: lm})
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(items, d, 0, 0)
	l.Title = "Landmarks"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	// q and esc belong to the explorer
	l.DisableQuitKeybindings()
	return l
}
