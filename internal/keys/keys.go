// Package keys provides string constants for Bubble Tea key press events
// and the key bindings shared by every component.
//
// The constants are derived from tea.KeyMsg{Type: tea.KeyXxx}.String() so
// they always match the runtime values.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation keys
var (
	Up     = tea.KeyMsg{Type: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyMsg{Type: tea.KeyDown}.String()   // "down"
	Left   = tea.KeyMsg{Type: tea.KeyLeft}.String()   // "left"
	Right  = tea.KeyMsg{Type: tea.KeyRight}.String()  // "right"
	Home   = tea.KeyMsg{Type: tea.KeyHome}.String()   // "home"
	End    = tea.KeyMsg{Type: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyMsg{Type: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyMsg{Type: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter     = tea.KeyMsg{Type: tea.KeyEnter}.String()     // "enter"
	Tab       = tea.KeyMsg{Type: tea.KeyTab}.String()       // "tab"
	ShiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}.String()  // "shift+tab"
	Space     = tea.KeyMsg{Type: tea.KeySpace}.String()     // " "
	Backspace = tea.KeyMsg{Type: tea.KeyBackspace}.String() // "backspace"
	Escape    = tea.KeyMsg{Type: tea.KeyEsc}.String()       // "esc"
)

// Function keys
var (
	F1 = tea.KeyMsg{Type: tea.KeyF1}.String() // "f1"
	F2 = tea.KeyMsg{Type: tea.KeyF2}.String() // "f2"
	F3 = tea.KeyMsg{Type: tea.KeyF3}.String() // "f3"
)

// Ctrl combinations
var (
	CtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}.String() // "ctrl+c"
	CtrlQ = tea.KeyMsg{Type: tea.KeyCtrlQ}.String() // "ctrl+q"
	CtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}.String() // "ctrl+r"
	CtrlY = tea.KeyMsg{Type: tea.KeyCtrlY}.String() // "ctrl+y"
)

// Map defines the key bindings of the client.
type Map struct {
	// Global keys
	Quit         key.Binding
	FocusNext    key.Binding
	FocusPrev    key.Binding
	MenuFile     key.Binding
	MenuAccounts key.Binding
	MenuHelp     key.Binding
	Copy         key.Binding
	Reload       key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	Enter  key.Binding
	Expand key.Binding
	Escape key.Binding
	Back   key.Binding
}

// Default returns the default key bindings.
func Default() Map {
	return Map{
		Quit: key.NewBinding(
			key.WithKeys(CtrlQ, CtrlC),
			key.WithHelp("ctrl+q", "quit"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys(Tab),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys(ShiftTab),
			key.WithHelp("shift+tab", "previous pane"),
		),
		MenuFile: key.NewBinding(
			key.WithKeys(F1),
			key.WithHelp("f1", "file menu"),
		),
		MenuAccounts: key.NewBinding(
			key.WithKeys(F2),
			key.WithHelp("f2", "accounts menu"),
		),
		MenuHelp: key.NewBinding(
			key.WithKeys(F3),
			key.WithHelp("f3", "help menu"),
		),
		Copy: key.NewBinding(
			key.WithKeys(CtrlY),
			key.WithHelp("ctrl+y", "copy message"),
		),
		Reload: key.NewBinding(
			key.WithKeys(CtrlR),
			key.WithHelp("ctrl+r", "reload"),
		),

		Up: key.NewBinding(
			key.WithKeys(Up),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(Down),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(Left),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys(Right),
			key.WithHelp("→", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys(PgUp),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys(PgDown),
			key.WithHelp("pgdown", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys(Home),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys(End),
			key.WithHelp("end", "last"),
		),

		Enter: key.NewBinding(
			key.WithKeys(Enter),
			key.WithHelp("enter", "select"),
		),
		Expand: key.NewBinding(
			key.WithKeys(Space),
			key.WithHelp("space", "expand"),
		),
		Escape: key.NewBinding(
			key.WithKeys(Escape),
			key.WithHelp("esc", "close"),
		),
		Back: key.NewBinding(
			key.WithKeys(Backspace),
			key.WithHelp("backspace", "back"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.FocusNext, m.MenuFile, m.Quit}
}

// FullHelp returns the bindings listed in the Keys dialog, grouped.
func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.FocusNext, m.FocusPrev, m.MenuFile, m.MenuAccounts, m.MenuHelp, m.Quit},
		{m.Up, m.Down, m.PageUp, m.PageDown, m.Home, m.End, m.Left, m.Right},
		{m.Enter, m.Expand, m.Escape, m.Copy, m.Reload},
	}
}

// IsPrintable reports whether msg types a single printable character.
func IsPrintable(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt && msg.Runes[0] >= ' '
}
