package layout

// Layout constants
const (
	DefaultContactsPercent = 25
	MinContactsPercent     = 15
	MaxContactsPercent     = 50
	TypingPercent          = 20
	MenuBarHeight          = 1
	StatusBarHeight        = 1
	MinContactsWidth       = 20
	MinTypingHeight        = 3

	// The smallest terminal the main window can be laid out in.
	MinWidth  = 40
	MinHeight = 12
)

// Layout holds calculated dimensions for all panes.
type Layout struct {
	// Total terminal dimensions
	TotalWidth  int
	TotalHeight int

	// Pane widths
	ContactsWidth int
	RightWidth    int

	// Pane heights. MainHeight is what is left between the bars.
	MainHeight     int
	MessagesHeight int
	TypingHeight   int

	MenuHeight   int
	StatusHeight int
}

// Fits reports whether a terminal of width x height can be laid out.
func Fits(width, height int) bool {
	return width >= MinWidth && height >= MinHeight
}

// ClampPercent limits the contacts width percentage to its valid range.
func ClampPercent(p int) int {
	return min(max(p, MinContactsPercent), MaxContactsPercent)
}

// Calculate computes the layout dimensions based on terminal size.
// contactsPercent controls the width of the contacts pane.
func Calculate(width, height, contactsPercent int) Layout {
	l := Layout{
		TotalWidth:   width,
		TotalHeight:  height,
		MenuHeight:   MenuBarHeight,
		StatusHeight: StatusBarHeight,
	}

	l.ContactsWidth = min(max(width*ClampPercent(contactsPercent)/100, MinContactsWidth), width)
	l.RightWidth = max(width-l.ContactsWidth, 0)

	l.MainHeight = max(height-l.MenuHeight-l.StatusHeight, 0)
	l.TypingHeight = min(max(l.MainHeight*TypingPercent/100, MinTypingHeight), l.MainHeight)
	l.MessagesHeight = l.MainHeight - l.TypingHeight
	return l
}

// MenuBarBounds returns the position and size of the menu bar.
func (l Layout) MenuBarBounds() (x, y, width, height int) {
	return 0, 0, l.TotalWidth, l.MenuHeight
}

// ContactsBounds returns the position and size of the contacts pane.
func (l Layout) ContactsBounds() (x, y, width, height int) {
	return 0, l.MenuHeight, l.ContactsWidth, l.MainHeight
}

// MessagesBounds returns the position and size of the messages pane.
func (l Layout) MessagesBounds() (x, y, width, height int) {
	return l.ContactsWidth, l.MenuHeight, l.RightWidth, l.MessagesHeight
}

// TypingBounds returns the position and size of the typing pane.
func (l Layout) TypingBounds() (x, y, width, height int) {
	return l.ContactsWidth, l.MenuHeight + l.MessagesHeight, l.RightWidth, l.TypingHeight
}

// StatusBarBounds returns the position and size of the status bar.
func (l Layout) StatusBarBounds() (x, y, width, height int) {
	return 0, l.MenuHeight + l.MainHeight, l.TotalWidth, l.StatusHeight
}

// Center returns the top-left corner that centres a width x height box on
// the terminal. Boxes larger than the terminal are pinned to the origin.
func (l Layout) Center(width, height int) (x, y int) {
	return max((l.TotalWidth-width)/2, 0), max((l.TotalHeight-height)/2, 0)
}
