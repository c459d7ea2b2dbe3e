package main

import (
	"fmt"
	"os"

	"github.com/avitaltamir/vibechat/internal/app"
	"github.com/avitaltamir/vibechat/internal/errors"
)

var version = "dev"

func main() {
	// Set the app version for display in the UI
	app.Version = version

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vchat: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
