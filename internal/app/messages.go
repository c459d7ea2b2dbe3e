package app

// StatusMsg flashes a message on the status bar.
type StatusMsg struct {
	Text string
}

// ErrorMsg reports an error from a background command. It is logged and
// flashed; it never stops the program.
type ErrorMsg struct {
	Err error
}

// flashExpiredMsg clears the flash message it belongs to.
type flashExpiredMsg struct {
	seq int
}
