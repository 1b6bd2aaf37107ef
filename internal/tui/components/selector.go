package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/normhash/internal/tui"
)

// Option represents a selectable option in the selector.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector is a component for selecting from a list of options.
// Used standalone it quits the program on selection; embedded in a wizard the
// parent inspects Submitted and Cancelled after forwarding key messages.
type Selector struct {
	title     string
	options   []Option
	cursor    int
	selected  int
	showHelp  bool
	keyMap    tui.KeyMap
	submitted bool
	cancelled bool
}

// NewSelector creates a new selector component.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		showHelp: true,
		keyMap:   tui.DefaultKeyMap(),
	}
}

// WithShowHelp enables or disables the help text.
func (s Selector) WithShowHelp(show bool) Selector {
	s.showHelp = show
	return s
}

// WithValue places the cursor on the option holding value, if any.
func (s Selector) WithValue(value string) Selector {
	for i, opt := range s.options {
		if opt.Value == value {
			s.cursor = i
			break
		}
	}
	return s
}

// Reset clears a previous selection, keeping the cursor.
func (s Selector) Reset() Selector {
	s.selected = -1
	s.submitted = false
	s.cancelled = false
	return s
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, s.keyMap.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, s.keyMap.Down):
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, s.keyMap.Select):
		if len(s.options) == 0 {
			return s, nil
		}
		s.selected = s.cursor
		s.submitted = true
		return s, tea.Quit
	case key.Matches(keyMsg, s.keyMap.Quit), key.Matches(keyMsg, s.keyMap.Back):
		s.cancelled = true
		return s, tea.Quit
	}
	return s, nil
}

// View implements tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render(s.title))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cursor := "  "
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected

		if i == s.cursor {
			cursor = ""
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")

		if opt.Description != "" {
			b.WriteString(tui.DescriptionStyle.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	if s.showHelp {
		b.WriteString(tui.HelpStyle.Render("\n" + s.keyMap.HelpText()))
	}

	return b.String()
}

// SelectedOption returns the selected option, or nil if none selected.
func (s Selector) SelectedOption() *Option {
	if s.selected >= 0 && s.selected < len(s.options) {
		return &s.options[s.selected]
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user made a selection.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Value returns the value of the selected option.
func (s Selector) Value() string {
	if opt := s.SelectedOption(); opt != nil {
		return opt.Value
	}
	return ""
}
