package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// searchBox is the inline "/" filter shared by the list sections
type searchBox struct {
	active bool
	query  string
}

// handle edits the query; changed reports whether the query changed
func (s *searchBox) handle(msg tea.KeyMsg) (changed bool) {
	before := s.query
	switch msg.Type {
	case tea.KeyEscape:
		s.active = false
		s.query = ""
	case tea.KeyEnter:
		// Keep the filter, leave search mode
		s.active = false
	case tea.KeyBackspace:
		if r := []rune(s.query); len(r) > 0 {
			s.query = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		s.query = ""
	case tea.KeyCtrlW:
		s.query = deleteWordBackward(s.query)
	case tea.KeySpace:
		s.query += " "
	case tea.KeyRunes:
		s.query += string(msg.Runes)
	}
	return s.query != before
}

// deleteWordBackward removes the last word from the string
func deleteWordBackward(s string) string {
	if s == "" {
		return ""
	}

	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}

	start := end
	for start > 0 && s[start-1] != ' ' {
		start--
	}

	return s[:start]
}

// view renders the search bar at the bottom of a list
func (s searchBox) view(styles *Styles, width, matches int) string {
	if s.active {
		line := "/" + s.query + "█"
		info := fmt.Sprintf(" (%d)", matches)
		return styles.InputFocused.Width(width).Render(Truncate(line, width-len(info)-4) + styles.ItemTime.Render(info))
	}
	if s.query != "" {
		return styles.ItemPreview.Render(Truncate("filter: "+s.query+"  (/ to edit)", width))
	}
	return styles.ItemPreview.Render("/ to search")
}
