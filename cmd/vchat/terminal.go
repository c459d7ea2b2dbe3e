package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/layout"
)

// checkTerminal makes sure stdin and stdout are a terminal big enough for
// the layout, and reports its colour depth.
func checkTerminal() (termenv.Profile, error) {
	if os.Getenv("TERM") == "dumb" {
		return termenv.Ascii, errors.TerminalUnsupported("TERM=dumb has no cursor addressing")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return termenv.Ascii, errors.TerminalUnsupported("stdin is not a terminal")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return termenv.Ascii, errors.TerminalUnsupported("stdout is not a terminal")
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return termenv.Ascii, errors.TerminalUnsupported(fmt.Sprintf("cannot read window size: %v", err))
	}
	if !layout.Fits(width, height) {
		return termenv.Ascii, errors.WindowTooSmall(width, height, layout.MinWidth, layout.MinHeight)
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile(), nil
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256"
	case termenv.ANSI:
		return "16"
	default:
		return "ascii"
	}
}
