package components

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/screen"
)

// Result is the outcome of offering an input event to a handler.
type Result int

const (
	// Continue means the handler did not claim the event; try the next one.
	Continue Result = iota
	// Handled means the event was consumed; redraw the handler and stop.
	Handled
	// Rejected means stop looking but do not redraw. Dialogs use it to ask
	// to be closed.
	Rejected
	// Quit means the user confirmed quitting; unwind to the main loop.
	Quit
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Handled:
		return "handled"
	case Rejected:
		return "rejected"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Stop reports whether the caller should stop offering the event.
func (r Result) Stop() bool {
	return r != Continue
}

// Component is the contract every drawable part of the UI implements.
type Component interface {
	// Redraw paints the component and stages it for the next commit.
	Redraw()
	// ProcessKey offers a key press to the component.
	ProcessKey(msg tea.KeyMsg) Result
	// ProcessMouse offers a decoded mouse event to the component.
	ProcessMouse(m Mouse) Result
}

// Focusable is a component that can hold keyboard focus.
type Focusable interface {
	Component
	Focused() bool
	SetFocused(focused bool)
}

// ButtonState is a bitmask of mouse buttons involved in one event.
type ButtonState uint8

const (
	LeftClick ButtonState = 1 << iota
	LeftDoubleClick
	RightClick
	RightDoubleClick
	WheelUp
	WheelDown
)

// Has reports whether any of the bits in b are set.
func (s ButtonState) Has(b ButtonState) bool {
	return s&b != 0
}

// Mouse is a mouse event in screen coordinates.
type Mouse struct {
	Pos     Position
	Buttons ButtonState
}

// State is the token passed to a control callback.
type State string

const (
	StateActivated        State = "activated"
	StateDeactivated      State = "deactivated"
	StateLeftClick        State = "leftClick"
	StateLeftDoubleClick  State = "leftDoubleClick"
	StateRightClick       State = "rightClick"
	StateRightDoubleClick State = "rightDoubleClick"
)

// Callback is invoked when a control is activated. Its result is returned
// from the control's handler unchanged.
type Callback func(state State, args ...any) Result

// Base carries what every component has: a region, a surface to draw into,
// the screen to stage that surface on, and the visible/focused flags.
type Base struct {
	Region

	scr     *screen.Screen
	surface *screen.Surface
	visible bool
	focused bool
	log     *slog.Logger
}

func newBase(scr *screen.Screen, ext Extent, topLeft Position, bordered bool, log *slog.Logger) Base {
	b := Base{scr: scr, visible: true, log: log}
	b.Region = NewRegion(Extent{}, topLeft, bordered)
	b.surface = screen.NewSurface(0, 0)
	b.resizeSurface(ext, topLeft)
	return b
}

// Screen returns the screen the component stages onto.
func (b *Base) Screen() *screen.Screen { return b.scr }

// Surface returns the component's own drawing surface.
func (b *Base) Surface() *screen.Surface { return b.surface }

// Visible reports whether the component is shown.
func (b *Base) Visible() bool { return b.visible }

// Focused returns the current focus state.
func (b *Base) Focused() bool { return b.focused }

// Stage copies the surface to the screen at the real top-left.
func (b *Base) Stage() {
	tl := b.RealTopLeft()
	b.scr.Stage(b.surface, tl.Row, tl.Col)
}

// clip discards the overflow reported for writes at a surface edge.
func (b *Base) clip(err error) {
	if err != nil && !errors.Is(err, screen.ErrOverflow) {
		b.log.Error("draw failed", "error", err)
	}
}

// Put writes one rune, swallowing edge overflow.
func (b *Base) Put(row, col int, r rune, a screen.Attr) {
	b.clip(b.surface.Put(row, col, r, a))
}

// Print writes text, swallowing edge overflow, and returns the columns used.
func (b *Base) Print(row, col int, text string, a screen.Attr) int {
	n, err := b.surface.Print(row, col, text, a)
	b.clip(err)
	return n
}

// FillRow writes n copies of r, swallowing edge overflow.
func (b *Base) FillRow(row, col, n int, r rune, a screen.Attr) {
	b.clip(b.surface.FillRow(row, col, n, r, a))
}

// resizeSurface resizes the surface and the region from what the surface
// reports back, clipped to the screen.
func (b *Base) resizeSurface(ext Extent, topLeft Position) {
	rows, cols := b.scr.Fit(topLeft.Row, topLeft.Col, ext.Rows, ext.Cols)
	b.surface.Resize(rows, cols)
	rows, cols = b.surface.Size()
	b.Region.Resize(Extent{Rows: rows, Cols: cols}, topLeft)
}
